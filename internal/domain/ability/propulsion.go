package ability

import "github.com/andrescamacho/shipforge/internal/domain/shared"

// CombatPropulsion provides main-drive thrust
type CombatPropulsion struct {
	baseThrust float64
	thrust     float64
}

func newCombatPropulsion(def Definition) *CombatPropulsion {
	base := def.Field("thrust", 0)
	return &CombatPropulsion{baseThrust: base, thrust: base}
}

func (a *CombatPropulsion) Kind() Kind {
	return KindCombatPropulsion
}

func (a *CombatPropulsion) Thrust() float64 {
	return a.thrust
}

func (a *CombatPropulsion) Recalculate(m Multipliers) {
	a.thrust = a.baseThrust * m.Get("thrust_mult")
}

func (a *CombatPropulsion) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Thrust", a.thrust)}
}

// ManeuveringThruster provides attitude control
type ManeuveringThruster struct {
	baseTurnRate float64
	turnRate     float64
}

func newManeuveringThruster(def Definition) *ManeuveringThruster {
	base := def.Field("turn_rate", 0)
	return &ManeuveringThruster{baseTurnRate: base, turnRate: base}
}

func (a *ManeuveringThruster) Kind() Kind {
	return KindManeuveringThruster
}

func (a *ManeuveringThruster) TurnRate() float64 {
	return a.turnRate
}

func (a *ManeuveringThruster) Recalculate(m Multipliers) {
	a.turnRate = a.baseTurnRate * m.Get("turn_mult")
}

func (a *ManeuveringThruster) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Turn Rate", a.turnRate)}
}
