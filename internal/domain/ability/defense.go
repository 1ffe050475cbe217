package ability

import "github.com/andrescamacho/shipforge/internal/domain/shared"

// ShieldProjection contributes shield capacity to the ship pool
type ShieldProjection struct {
	baseCapacity float64
	capacity     float64
}

func newShieldProjection(def Definition) *ShieldProjection {
	base := def.Field("capacity", 0)
	return &ShieldProjection{baseCapacity: base, capacity: base}
}

func (a *ShieldProjection) Kind() Kind {
	return KindShieldProjection
}

func (a *ShieldProjection) Capacity() float64 {
	return a.capacity
}

func (a *ShieldProjection) Recalculate(m Multipliers) {
	a.capacity = a.baseCapacity * m.Get("capacity_mult")
}

func (a *ShieldProjection) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Shield Capacity", a.capacity)}
}

// ShieldRegeneration contributes shield recharge rate. Its rate scales with
// capacity_mult, matching the shipped data model: there is no dedicated
// regen_mult key.
type ShieldRegeneration struct {
	baseRate float64
	rate     float64
}

func newShieldRegeneration(def Definition) *ShieldRegeneration {
	base := def.Field("rate", 0)
	return &ShieldRegeneration{baseRate: base, rate: base}
}

func (a *ShieldRegeneration) Kind() Kind {
	return KindShieldRegeneration
}

func (a *ShieldRegeneration) Rate() float64 {
	return a.rate
}

func (a *ShieldRegeneration) Recalculate(m Multipliers) {
	a.rate = a.baseRate * m.Get("capacity_mult")
}

func (a *ShieldRegeneration) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Shield Regeneration", a.rate)}
}

// Armor marks a component as part of the shared armor pool
type Armor struct {
	baseMitigation float64
	mitigation     float64
}

func newArmor(def Definition) *Armor {
	base := def.Field("mitigation", 0)
	return &Armor{baseMitigation: base, mitigation: base}
}

func (a *Armor) Kind() Kind {
	return KindArmor
}

func (a *Armor) Mitigation() float64 {
	return a.mitigation
}

func (a *Armor) Recalculate(m Multipliers) {
	a.mitigation = a.baseMitigation
}

func (a *Armor) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Damage Mitigation", a.mitigation)}
}

// ToHitModifier covers both the attack and defense to-hit variants
type ToHitModifier struct {
	kind      Kind
	baseBonus float64
	bonus     float64
}

func newToHitModifier(def Definition, kind Kind) *ToHitModifier {
	base := def.Field("bonus", 0)
	return &ToHitModifier{kind: kind, baseBonus: base, bonus: base}
}

func (a *ToHitModifier) Kind() Kind {
	return a.kind
}

func (a *ToHitModifier) Bonus() float64 {
	return a.bonus
}

func (a *ToHitModifier) Recalculate(m Multipliers) {
	a.bonus = a.baseBonus
}

func (a *ToHitModifier) SummaryRows() []shared.SummaryRow {
	label := "To-Hit Attack Bonus"
	if a.kind == KindToHitDefense {
		label = "To-Hit Defense Bonus"
	}
	return []shared.SummaryRow{shared.NewSummaryRow(label, a.bonus)}
}
