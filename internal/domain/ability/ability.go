package ability

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Kind identifies an ability variant. The set is closed: construction goes
// through New, which matches exhaustively, so an unknown kind can never
// produce a half-built instance.
type Kind string

const (
	KindCombatPropulsion    Kind = "combat_propulsion"
	KindManeuveringThruster Kind = "maneuvering_thruster"
	KindProjectileWeapon    Kind = "projectile_weapon"
	KindBeamWeapon          Kind = "beam_weapon"
	KindSeekerWeapon        Kind = "seeker_weapon"
	KindShieldProjection    Kind = "shield_projection"
	KindShieldRegeneration  Kind = "shield_regeneration"
	KindResourceStorage     Kind = "resource_storage"
	KindResourceGeneration  Kind = "resource_generation"
	KindResourceConsumption Kind = "resource_consumption"
	KindCrewCapacity        Kind = "crew_capacity"
	KindLifeSupportCapacity Kind = "life_support_capacity"
	KindCrewRequired        Kind = "crew_required"
	KindArmor               Kind = "armor"
	KindCommandAndControl   Kind = "command_and_control"
	KindVehicleLaunch       Kind = "vehicle_launch"
	KindToHitAttack         Kind = "to_hit_attack"
	KindToHitDefense        Kind = "to_hit_defense"
)

var validKinds = map[Kind]bool{
	KindCombatPropulsion:    true,
	KindManeuveringThruster: true,
	KindProjectileWeapon:    true,
	KindBeamWeapon:          true,
	KindSeekerWeapon:        true,
	KindShieldProjection:    true,
	KindShieldRegeneration:  true,
	KindResourceStorage:     true,
	KindResourceGeneration:  true,
	KindResourceConsumption: true,
	KindCrewCapacity:        true,
	KindLifeSupportCapacity: true,
	KindCrewRequired:        true,
	KindArmor:               true,
	KindCommandAndControl:   true,
	KindVehicleLaunch:       true,
	KindToHitAttack:         true,
	KindToHitDefense:        true,
}

// IsValid reports whether the kind names a known variant
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// Multipliers is the combined multiplier map computed from a component's
// eligible modifiers, keyed by stat key (thrust_mult, range_mult, ...).
// Absent keys mean identity.
type Multipliers map[string]float64

// Get returns the multiplier for key, 1.0 when absent
func (m Multipliers) Get(key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 1.0
}

// Ability is one capability attached to a component. Implementations store
// base values fixed at instantiation and current values derived from them;
// Recalculate rederives current from base, so repeated calls with the same
// multipliers are idempotent.
type Ability interface {
	Kind() Kind
	Recalculate(m Multipliers)
	SummaryRows() []shared.SummaryRow
}

// Definition is the data form of an ability inside a component definition:
// a variant kind plus raw numeric fields, with an optional resource kind for
// the resource variants.
type Definition struct {
	Kind     Kind                `yaml:"kind"`
	Fields   map[string]float64  `yaml:"fields"`
	Resource shared.ResourceKind `yaml:"resource,omitempty"`
}

// Field returns a named raw field, or fallback when absent
func (d Definition) Field(name string, fallback float64) float64 {
	if v, ok := d.Fields[name]; ok {
		return v
	}
	return fallback
}

// Validate checks the definition against the closed variant set
func (d Definition) Validate() error {
	if !d.Kind.IsValid() {
		return shared.NewValidationError("kind", fmt.Sprintf("unknown ability kind %q", d.Kind))
	}
	switch d.Kind {
	case KindResourceStorage, KindResourceGeneration, KindResourceConsumption:
		if !d.Resource.IsValid() {
			return shared.NewValidationError("resource",
				fmt.Sprintf("ability %s requires a valid resource kind, got %q", d.Kind, d.Resource))
		}
	}
	return nil
}

// New instantiates an ability from its definition with empty runtime state.
// The match is exhaustive over the closed variant set.
func New(def Definition) (Ability, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	switch def.Kind {
	case KindCombatPropulsion:
		return newCombatPropulsion(def), nil
	case KindManeuveringThruster:
		return newManeuveringThruster(def), nil
	case KindProjectileWeapon, KindBeamWeapon:
		return newWeapon(def), nil
	case KindSeekerWeapon:
		return newSeekerWeapon(def), nil
	case KindShieldProjection:
		return newShieldProjection(def), nil
	case KindShieldRegeneration:
		return newShieldRegeneration(def), nil
	case KindResourceStorage:
		return newResourceStorage(def), nil
	case KindResourceGeneration:
		return newResourceGeneration(def), nil
	case KindResourceConsumption:
		return newResourceConsumption(def), nil
	case KindCrewCapacity:
		return newCrewCapacity(def), nil
	case KindLifeSupportCapacity:
		return newLifeSupportCapacity(def), nil
	case KindCrewRequired:
		return newCrewRequired(def), nil
	case KindArmor:
		return newArmor(def), nil
	case KindCommandAndControl:
		return newCommandAndControl(def), nil
	case KindVehicleLaunch:
		return newVehicleLaunch(def), nil
	case KindToHitAttack:
		return newToHitModifier(def, KindToHitAttack), nil
	case KindToHitDefense:
		return newToHitModifier(def, KindToHitDefense), nil
	default:
		return nil, shared.NewValidationError("kind", fmt.Sprintf("unknown ability kind %q", def.Kind))
	}
}

// CarryState copies runtime-mutable state (cooldowns, stored resources) from
// old instances onto fresh ones, matching by variant kind. Each old instance
// donates at most once. Fresh instances with no donor keep empty state; old
// instances whose variant disappeared are simply dropped.
func CarryState(old, fresh []Ability) {
	consumed := make([]bool, len(old))

	for _, next := range fresh {
		for i, prev := range old {
			if consumed[i] || prev.Kind() != next.Kind() {
				continue
			}
			carryInstanceState(prev, next)
			consumed[i] = true
			break
		}
	}
}

// carryInstanceState moves the explicitly-defined carryable state between two
// instances of the same kind. Stateless variants fall through.
func carryInstanceState(prev, next Ability) {
	switch p := prev.(type) {
	case *Weapon:
		if n, ok := next.(*Weapon); ok {
			n.state = p.state
		}
	case *SeekerWeapon:
		if n, ok := next.(*SeekerWeapon); ok {
			n.state = p.state
		}
	case *ResourceStorage:
		if n, ok := next.(*ResourceStorage); ok {
			n.stored = p.stored
		}
	}
}
