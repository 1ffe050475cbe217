package modifier

import (
	"github.com/andrescamacho/shipforge/internal/domain/formula"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Instance is one attached modifier: a reference to its shared definition
// plus the current slider value. Instances are owned exclusively by their
// component and die with it.
type Instance struct {
	def   *Definition
	value float64
}

// NewInstance creates an instance at the definition default, or at initial
// when provided. An out-of-range initial is rejected with no instance built.
func NewInstance(def *Definition, initial *float64) (*Instance, error) {
	value := def.Default
	if initial != nil {
		if !def.InRange(*initial) {
			return nil, shared.NewOutOfRangeError(def.ID, *initial, def.Min, def.Max)
		}
		value = *initial
	}
	return &Instance{def: def, value: value}, nil
}

func (i *Instance) Definition() *Definition {
	return i.def
}

func (i *Instance) ID() string {
	return i.def.ID
}

func (i *Instance) Value() float64 {
	return i.value
}

// SetValue adjusts the slider. Out-of-range values and derived (read-only)
// modifiers are rejected with the value left unchanged.
func (i *Instance) SetValue(v float64) error {
	if i.def.Derived {
		return shared.NewModifierError("modifier " + i.def.ID + " is derived and cannot be adjusted")
	}
	if !i.def.InRange(v) {
		return shared.NewOutOfRangeError(i.def.ID, v, i.def.Min, i.def.Max)
	}
	i.value = v
	return nil
}

// EffectMultipliers evaluates every effect formula against the current
// slider value. A formula that fails to evaluate contributes nothing (its
// stat keeps whatever the other modifiers produce); evaluation never aborts.
func (i *Instance) EffectMultipliers() map[string]float64 {
	ctx := formula.Context{"value": i.value}

	out := make(map[string]float64, len(i.def.Effects))
	for key, expr := range i.def.Effects {
		v, err := formula.Eval(expr, ctx)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}
