package component

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Definition is the immutable data form of a component: base attributes,
// the abilities it carries, classification tags and optional formulas for
// fields computed at instantiation time.
//
// Formula keys address either a component scalar ("mass", "hit_points",
// "cost") or an ability field ("combat_propulsion.thrust"). Formula values
// are restricted expressions evaluated against the upstream whitelist
// context (currently the owning ship's mass budget as ship_class_mass).
type Definition struct {
	ID        string               `yaml:"id" validate:"required"`
	Name      string               `yaml:"name"`
	Mass      float64              `yaml:"mass" validate:"min=0"`
	HitPoints float64              `yaml:"hit_points" validate:"min=0"`
	Cost      float64              `yaml:"cost" validate:"min=0"`
	Tags      []string             `yaml:"tags"`
	Abilities []ability.Definition `yaml:"abilities"`
	Formulas  map[string]string    `yaml:"formulas"`
}

// Validate checks the definition and all its ability definitions
func (d *Definition) Validate() error {
	if d.ID == "" {
		return shared.NewValidationError("id", "component id cannot be empty")
	}
	if d.Mass < 0 || d.HitPoints < 0 || d.Cost < 0 {
		return shared.NewValidationError("attributes",
			fmt.Sprintf("component %s: base attributes cannot be negative", d.ID))
	}
	for _, adef := range d.Abilities {
		if err := adef.Validate(); err != nil {
			return fmt.Errorf("component %s: %w", d.ID, err)
		}
	}
	for key := range d.Formulas {
		if err := validateFormulaKey(d, key); err != nil {
			return err
		}
	}
	return nil
}

func validateFormulaKey(d *Definition, key string) error {
	switch key {
	case "mass", "hit_points", "cost":
		return nil
	}
	kind, _, ok := splitFormulaKey(key)
	if !ok {
		return shared.NewValidationError("formulas",
			fmt.Sprintf("component %s: formula key %q is neither a scalar nor ability.field", d.ID, key))
	}
	for _, adef := range d.Abilities {
		if adef.Kind == kind {
			return nil
		}
	}
	return shared.NewValidationError("formulas",
		fmt.Sprintf("component %s: formula key %q targets an ability the component does not carry", d.ID, key))
}

// splitFormulaKey parses an "ability_kind.field" formula key
func splitFormulaKey(key string) (ability.Kind, string, bool) {
	idx := strings.IndexByte(key, '.')
	if idx <= 0 || idx == len(key)-1 {
		return "", "", false
	}
	kind := ability.Kind(key[:idx])
	if !kind.IsValid() {
		return "", "", false
	}
	return kind, key[idx+1:], true
}

// HasTag reports whether the definition carries a classification tag
func (d *Definition) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
