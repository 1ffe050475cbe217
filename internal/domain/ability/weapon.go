package ability

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// WeaponState is the carryable runtime state of a weapon instance. It is the
// canonical owner of weapon cooldown/ammo; no other subsystem duplicates it.
type WeaponState struct {
	CooldownRemaining float64
	AmmoRemaining     float64
}

// FireResult reports the outcome of a fire attempt
type FireResult struct {
	Fired             bool
	Reason            string
	CooldownRemaining float64
	AmmoRemaining     float64
}

// WeaponLike is implemented by every weapon variant. Aggregation and battle
// code work against this interface so seeker refinements stay transparent.
type WeaponLike interface {
	Ability
	Damage() float64
	Range() float64
	ReloadTime() float64
	FiringArc() float64
	EffectiveRange() float64
	EffectiveDamage(distance float64) float64
	Fire() FireResult
	Tick(seconds float64)
	State() WeaponState
}

// Weapon covers the projectile and beam variants. A magazine of zero means
// the weapon does not track ammunition (beams).
type Weapon struct {
	kind Kind

	baseDamage float64
	baseRange  float64
	baseReload float64

	damage    float64
	rng       float64
	reload    float64
	firingArc float64
	falloff   float64
	magazine  float64

	state WeaponState
}

func newWeapon(def Definition) *Weapon {
	w := &Weapon{
		kind:       def.Kind,
		baseDamage: def.Field("damage", 0),
		baseRange:  def.Field("range", 0),
		baseReload: def.Field("reload_time", 0),
		firingArc:  def.Field("firing_arc", 360),
		falloff:    def.Field("falloff", 0),
		magazine:   def.Field("magazine", 0),
	}
	w.damage = w.baseDamage
	w.rng = w.baseRange
	w.reload = w.baseReload
	w.state.AmmoRemaining = w.magazine
	return w
}

func (w *Weapon) Kind() Kind {
	return w.kind
}

func (w *Weapon) Damage() float64 {
	return w.damage
}

func (w *Weapon) Range() float64 {
	return w.rng
}

func (w *Weapon) ReloadTime() float64 {
	return w.reload
}

func (w *Weapon) FiringArc() float64 {
	return w.firingArc
}

func (w *Weapon) State() WeaponState {
	return w.state
}

// EffectiveRange is the distance beyond which the weapon cannot hit
func (w *Weapon) EffectiveRange() float64 {
	return w.rng
}

// EffectiveDamage returns damage at the given distance with linear falloff.
// Zero beyond effective range.
func (w *Weapon) EffectiveDamage(distance float64) float64 {
	return effectiveDamage(w.damage, w.EffectiveRange(), w.falloff, distance)
}

// Fire attempts to fire, mutating cooldown/ammo runtime state
func (w *Weapon) Fire() FireResult {
	return fire(&w.state, w.reload, w.magazine)
}

// Tick advances the cooldown timer
func (w *Weapon) Tick(seconds float64) {
	tick(&w.state, seconds)
}

func (w *Weapon) Recalculate(m Multipliers) {
	w.damage = w.baseDamage * m.Get("damage_mult")
	w.rng = w.baseRange * m.Get("range_mult")
	w.reload = w.baseReload * m.Get("reload_mult")
}

func (w *Weapon) SummaryRows() []shared.SummaryRow {
	rows := []shared.SummaryRow{
		shared.NewSummaryRow("Damage", w.damage),
		shared.NewSummaryRow("Range", w.rng),
		shared.NewSummaryRow("Reload Time", w.reload),
		shared.NewSummaryRow("Firing Arc", w.firingArc),
	}
	if w.magazine > 0 {
		rows = append(rows, shared.NewTextSummaryRow("Ammunition",
			fmt.Sprintf("%g / %g", w.state.AmmoRemaining, w.magazine)))
	}
	return rows
}

// SeekerWeapon is the guided-munition refinement: its effective range is
// projectile speed times endurance, not the base range field.
type SeekerWeapon struct {
	Weapon

	baseTurnRate  float64
	baseEndurance float64
	baseSpeed     float64

	turnRate        float64
	endurance       float64
	projectileSpeed float64
}

func newSeekerWeapon(def Definition) *SeekerWeapon {
	s := &SeekerWeapon{
		Weapon:        *newWeapon(def),
		baseTurnRate:  def.Field("turn_rate", 0),
		baseEndurance: def.Field("endurance", 0),
		baseSpeed:     def.Field("projectile_speed", 0),
	}
	s.turnRate = s.baseTurnRate
	s.endurance = s.baseEndurance
	s.projectileSpeed = s.baseSpeed
	return s
}

func (s *SeekerWeapon) TurnRate() float64 {
	return s.turnRate
}

func (s *SeekerWeapon) Endurance() float64 {
	return s.endurance
}

func (s *SeekerWeapon) ProjectileSpeed() float64 {
	return s.projectileSpeed
}

// EffectiveRange for a seeker is how far its projectile can travel before
// running out of endurance
func (s *SeekerWeapon) EffectiveRange() float64 {
	return s.projectileSpeed * s.endurance
}

func (s *SeekerWeapon) EffectiveDamage(distance float64) float64 {
	return effectiveDamage(s.damage, s.EffectiveRange(), s.falloff, distance)
}

func (s *SeekerWeapon) Recalculate(m Multipliers) {
	s.Weapon.Recalculate(m)
	s.turnRate = s.baseTurnRate
	s.endurance = s.baseEndurance
	s.projectileSpeed = s.baseSpeed
}

func (s *SeekerWeapon) SummaryRows() []shared.SummaryRow {
	rows := s.Weapon.SummaryRows()
	rows = append(rows,
		shared.NewSummaryRow("Projectile Speed", s.projectileSpeed),
		shared.NewSummaryRow("Endurance", s.endurance),
		shared.NewSummaryRow("Seeker Turn Rate", s.turnRate),
		shared.NewSummaryRow("Effective Range", s.EffectiveRange()),
	)
	return rows
}

func effectiveDamage(damage, effectiveRange, falloff, distance float64) float64 {
	if distance < 0 || effectiveRange <= 0 || distance > effectiveRange {
		return 0
	}
	scaled := damage * (1 - falloff*(distance/effectiveRange))
	if scaled < 0 {
		return 0
	}
	return scaled
}

func fire(state *WeaponState, reload, magazine float64) FireResult {
	if state.CooldownRemaining > 0 {
		return FireResult{
			Reason:            "weapon is cooling down",
			CooldownRemaining: state.CooldownRemaining,
			AmmoRemaining:     state.AmmoRemaining,
		}
	}
	if magazine > 0 && state.AmmoRemaining <= 0 {
		return FireResult{
			Reason:        "magazine is empty",
			AmmoRemaining: 0,
		}
	}

	if magazine > 0 {
		state.AmmoRemaining--
	}
	state.CooldownRemaining = reload

	return FireResult{
		Fired:             true,
		CooldownRemaining: state.CooldownRemaining,
		AmmoRemaining:     state.AmmoRemaining,
	}
}

func tick(state *WeaponState, seconds float64) {
	state.CooldownRemaining -= seconds
	if state.CooldownRemaining < 0 {
		state.CooldownRemaining = 0
	}
}
