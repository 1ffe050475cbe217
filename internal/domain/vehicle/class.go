package vehicle

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Layer is one structural band of a vehicle class (hull, structure, systems,
// ...) with a fixed slot count. Components placed into a layer automatically
// receive the layer's required modifiers.
type Layer struct {
	Name              string   `yaml:"name" validate:"required"`
	Slots             int      `yaml:"slots" validate:"min=1"`
	RequiredModifiers []string `yaml:"required_modifiers"`
}

// ClassDefinition describes a vehicle class: its mass budget (the upstream
// input component formulas may reference), layer structure and the abilities
// a completed design must carry.
type ClassDefinition struct {
	ID                string         `yaml:"id" validate:"required"`
	Name              string         `yaml:"name"`
	MassBudget        float64        `yaml:"mass_budget" validate:"min=0"`
	Layers            []Layer        `yaml:"layers" validate:"required,min=1"`
	RequiredAbilities []ability.Kind `yaml:"required_abilities"`
}

// Validate checks the class definition
func (d *ClassDefinition) Validate() error {
	if d.ID == "" {
		return shared.NewValidationError("id", "vehicle class id cannot be empty")
	}
	if d.MassBudget < 0 {
		return shared.NewValidationError("mass_budget",
			fmt.Sprintf("class %s: mass budget cannot be negative", d.ID))
	}
	if len(d.Layers) == 0 {
		return shared.NewValidationError("layers",
			fmt.Sprintf("class %s: at least one layer is required", d.ID))
	}
	seen := make(map[string]bool, len(d.Layers))
	for _, layer := range d.Layers {
		if layer.Name == "" {
			return shared.NewValidationError("layers",
				fmt.Sprintf("class %s: layer name cannot be empty", d.ID))
		}
		if seen[layer.Name] {
			return shared.NewValidationError("layers",
				fmt.Sprintf("class %s: duplicate layer %s", d.ID, layer.Name))
		}
		seen[layer.Name] = true
		if layer.Slots < 1 {
			return shared.NewValidationError("layers",
				fmt.Sprintf("class %s: layer %s needs at least one slot", d.ID, layer.Name))
		}
	}
	for _, k := range d.RequiredAbilities {
		if !k.IsValid() {
			return shared.NewValidationError("required_abilities",
				fmt.Sprintf("class %s: unknown ability kind %q", d.ID, k))
		}
	}
	return nil
}

// Layer returns the named layer definition
func (d *ClassDefinition) Layer(name string) (*Layer, bool) {
	for i := range d.Layers {
		if d.Layers[i].Name == name {
			return &d.Layers[i], true
		}
	}
	return nil, false
}
