package vehicle

import (
	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// ResourceStats aggregates one resource kind across the ship
type ResourceStats struct {
	StorageCapacity float64
	Stored          float64
	Generation      float64
	Consumption     float64
}

// ShipStats is the ship-level aggregation of component and ability values.
// It is a pure function of the component graph; comparing two ShipStats
// values is a legitimate way to assert a design is unchanged.
type ShipStats struct {
	ComponentCount int

	TotalMass float64
	TotalCost float64

	TotalThrust float64
	TurnRate    float64

	MaxShields  float64
	ShieldRegen float64
	ArmorHPPool float64

	MaxWeaponRange float64
	ToHitAttack    float64
	ToHitDefense   float64

	Resources map[shared.ResourceKind]ResourceStats

	CrewCapacity float64
	LifeSupport  float64
	CrewRequired float64
	Understaffed bool

	FighterCapacity float64

	HasCommandAndControl bool
}

// ComputeStats aggregates a ship's components into derived stats. It
// iterates ability presence, never a component's declared kind: a component
// may carry zero, one or several unrelated abilities.
//
// Mass and cost count every placed component. Everything else counts only
// operational components. When the vehicle class requires command and
// control, combat abilities (thrust, turning, weapons, shields, to-hit)
// additionally need an operational command-and-control component somewhere
// on the ship.
func ComputeStats(s *Ship) ShipStats {
	stats := ShipStats{
		Resources: make(map[shared.ResourceKind]ResourceStats),
	}

	components := s.Components()
	stats.ComponentCount = len(components)

	for _, c := range components {
		if !c.Operational() {
			continue
		}
		if _, ok := c.Ability(ability.KindCommandAndControl); ok {
			stats.HasCommandAndControl = true
			break
		}
	}

	requiresCommand := false
	for _, k := range s.class.RequiredAbilities {
		if k == ability.KindCommandAndControl {
			requiresCommand = true
			break
		}
	}
	combatEnabled := !requiresCommand || stats.HasCommandAndControl

	for _, c := range components {
		stats.TotalMass += c.Mass()
		stats.TotalCost += c.Cost()

		if !c.Operational() {
			continue
		}

		if c.HasAbility(ability.KindArmor) {
			stats.ArmorHPPool += c.CurrentHP()
		}

		for _, a := range c.AllAbilities() {
			aggregateSupport(&stats, a)
			if combatEnabled {
				aggregateCombat(&stats, a)
			}
		}
	}

	stats.Understaffed = stats.CrewRequired > stats.CrewCapacity ||
		stats.CrewRequired > stats.LifeSupport

	return stats
}

// aggregateSupport sums abilities that work without command and control
func aggregateSupport(stats *ShipStats, a ability.Ability) {
	switch v := a.(type) {
	case *ability.ResourceStorage:
		r := stats.Resources[v.Resource()]
		r.StorageCapacity += v.MaxAmount()
		r.Stored += v.Stored()
		stats.Resources[v.Resource()] = r
	case *ability.ResourceGeneration:
		r := stats.Resources[v.Resource()]
		r.Generation += v.Rate()
		stats.Resources[v.Resource()] = r
	case *ability.ResourceConsumption:
		r := stats.Resources[v.Resource()]
		r.Consumption += v.Amount()
		stats.Resources[v.Resource()] = r
	case *ability.CrewCapacity:
		stats.CrewCapacity += v.Capacity()
	case *ability.LifeSupportCapacity:
		stats.LifeSupport += v.Capacity()
	case *ability.CrewRequired:
		stats.CrewRequired += v.Crew()
	case *ability.VehicleLaunch:
		stats.FighterCapacity += v.Capacity()
	}
}

// aggregateCombat sums abilities gated on command-and-control presence
func aggregateCombat(stats *ShipStats, a ability.Ability) {
	switch v := a.(type) {
	case *ability.CombatPropulsion:
		stats.TotalThrust += v.Thrust()
	case *ability.ManeuveringThruster:
		stats.TurnRate += v.TurnRate()
	case *ability.ShieldProjection:
		stats.MaxShields += v.Capacity()
	case *ability.ShieldRegeneration:
		stats.ShieldRegen += v.Rate()
	case *ability.ToHitModifier:
		if v.Kind() == ability.KindToHitAttack {
			stats.ToHitAttack += v.Bonus()
		} else {
			stats.ToHitDefense += v.Bonus()
		}
	default:
		if w, ok := a.(ability.WeaponLike); ok {
			if r := w.EffectiveRange(); r > stats.MaxWeaponRange {
				stats.MaxWeaponRange = r
			}
		}
	}
}
