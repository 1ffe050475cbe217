package modifier

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Definition describes a player-attachable stat transform. Definitions are
// immutable once loaded and shared by reference between instances.
//
// Effects map stat keys (thrust_mult, range_mult, mass_mult, ...) to formulas
// evaluated against the instance's current slider value, exposed to the
// formula as "value". Same-keyed effects from different attached modifiers
// combine multiplicatively on the component.
type Definition struct {
	ID          string            `yaml:"id" validate:"required"`
	Name        string            `yaml:"name"`
	Restriction Restriction       `yaml:"restriction"`
	Min         float64           `yaml:"min"`
	Max         float64           `yaml:"max"`
	Default     float64           `yaml:"default"`
	Effects     map[string]string `yaml:"effects" validate:"required,min=1"`

	// Mandatory modifiers are auto-attached by layer requirements and cannot
	// be detached while the requirement holds.
	Mandatory bool `yaml:"mandatory"`

	// Derived modifiers have no player-adjustable slider.
	Derived bool `yaml:"derived"`
}

// Validate checks internal consistency of the definition
func (d *Definition) Validate() error {
	if d.ID == "" {
		return shared.NewValidationError("id", "modifier id cannot be empty")
	}
	if d.Min > d.Max {
		return shared.NewValidationError("min",
			fmt.Sprintf("modifier %s: min %g exceeds max %g", d.ID, d.Min, d.Max))
	}
	if d.Default < d.Min || d.Default > d.Max {
		return shared.NewValidationError("default",
			fmt.Sprintf("modifier %s: default %g outside range [%g, %g]", d.ID, d.Default, d.Min, d.Max))
	}
	if len(d.Effects) == 0 {
		return shared.NewValidationError("effects",
			fmt.Sprintf("modifier %s: at least one effect is required", d.ID))
	}
	if err := d.Restriction.Validate(); err != nil {
		return err
	}
	return nil
}

// InRange reports whether v is a legal slider value for this definition
func (d *Definition) InRange(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// Target is the view of a component a restriction is evaluated against:
// its definition id, classification tags and current ability set. Legacy
// type-name matching is deliberately not part of this interface.
type Target interface {
	DefinitionID() string
	HasTag(tag string) bool
	HasAbility(kind ability.Kind) bool
}

// EligibleFor reports whether the modifier may be attached to (or remain
// effective on) the given component view
func (d *Definition) EligibleFor(t Target) bool {
	return d.Restriction.Allows(t)
}
