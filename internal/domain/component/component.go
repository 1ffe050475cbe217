package component

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/formula"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Status is the damage state of a component
type Status string

const (
	StatusNominal   Status = "NOMINAL"
	StatusDamaged   Status = "DAMAGED"
	StatusDestroyed Status = "DESTROYED"
)

// Component is a runtime part of a ship: resolved attributes, attached
// modifier instances and instantiated abilities.
//
// Invariants:
// - Resolved mass/hp/cost and every ability's resolved stats are a pure
//   function of definition base values and currently-attached eligible
//   modifiers, rederived by Recalculate - never hand-mutated elsewhere.
// - Ability runtime state (cooldowns, stored resources) survives
//   recalculation unless the ability variant itself disappears.
// - Modifier eligibility is evaluated against tags and ability presence,
//   re-checked on every recalculation.
type Component struct {
	instanceID string
	def        *Definition

	mass         float64
	maxHitPoints float64
	currentHP    float64
	cost         float64
	status       Status

	modifiers []*modifier.Instance
	abilities []ability.Ability

	// Modifier ids the current layer placement requires; such modifiers are
	// mandatory and cannot be detached while required.
	requiredModifiers map[string]bool
}

// New creates a component from its definition and runs the recalculation
// pipeline once with the given upstream context, so abilities exist
// immediately.
func New(def *Definition, ctx formula.Context) *Component {
	c := &Component{
		instanceID:        uuid.NewString(),
		def:               def,
		status:            StatusNominal,
		requiredModifiers: make(map[string]bool),
	}
	c.currentHP = -1 // sentinel: first Recalculate sets full HP
	c.Recalculate(ctx)
	return c
}

// Getters

func (c *Component) InstanceID() string {
	return c.instanceID
}

func (c *Component) Definition() *Definition {
	return c.def
}

// DefinitionID implements modifier.Target
func (c *Component) DefinitionID() string {
	return c.def.ID
}

func (c *Component) Name() string {
	if c.def.Name != "" {
		return c.def.Name
	}
	return c.def.ID
}

func (c *Component) Mass() float64 {
	return c.mass
}

func (c *Component) MaxHitPoints() float64 {
	return c.maxHitPoints
}

func (c *Component) CurrentHP() float64 {
	return c.currentHP
}

func (c *Component) Cost() float64 {
	return c.cost
}

func (c *Component) Status() Status {
	return c.status
}

// Operational reports whether the component's abilities may contribute to
// ship totals. Ship-level dependencies (command and control presence) are
// layered on top by the stats aggregator.
func (c *Component) Operational() bool {
	return c.currentHP > 0
}

// HasTag implements modifier.Target
func (c *Component) HasTag(tag string) bool {
	return c.def.HasTag(tag)
}

// HasAbility implements modifier.Target
func (c *Component) HasAbility(kind ability.Kind) bool {
	for _, a := range c.abilities {
		if a.Kind() == kind {
			return true
		}
	}
	return false
}

// Ability returns the first ability of the given kind, or nil and false when
// the component does not carry the variant. Callers handle absence
// explicitly; there is no error form.
func (c *Component) Ability(kind ability.Kind) (ability.Ability, bool) {
	for _, a := range c.abilities {
		if a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}

// Abilities returns every ability of the given kind in attachment order
func (c *Component) Abilities(kind ability.Kind) []ability.Ability {
	var out []ability.Ability
	for _, a := range c.abilities {
		if a.Kind() == kind {
			out = append(out, a)
		}
	}
	return out
}

// AllAbilities returns every ability instance in attachment order
func (c *Component) AllAbilities() []ability.Ability {
	return c.abilities
}

// Modifiers returns the attached modifier instances in attachment order
func (c *Component) Modifiers() []*modifier.Instance {
	return c.modifiers
}

// ModifierInstance returns the attached instance for a modifier id
func (c *Component) ModifierInstance(id string) (*modifier.Instance, bool) {
	for _, inst := range c.modifiers {
		if inst.ID() == id {
			return inst, true
		}
	}
	return nil, false
}

// Modifier operations. None of these trigger recalculation themselves; the
// owning ship/builder recalculates after each structural edit.

// AttachModifier attaches a modifier instance, rejecting ineligible and
// duplicate attachments with no state mutated. A nil initial uses the
// definition default.
func (c *Component) AttachModifier(def *modifier.Definition, initial *float64) error {
	if _, exists := c.ModifierInstance(def.ID); exists {
		return shared.NewModifierError(
			fmt.Sprintf("modifier %s is already attached to component %s", def.ID, c.def.ID))
	}
	if !def.EligibleFor(c) {
		return shared.NewIneligibleModifierError(def.ID, c.def.ID)
	}

	inst, err := modifier.NewInstance(def, initial)
	if err != nil {
		return err
	}
	c.modifiers = append(c.modifiers, inst)
	return nil
}

// DetachModifier removes an attached modifier. Mandatory modifiers still
// required by the layer placement cannot be detached.
func (c *Component) DetachModifier(id string) error {
	for i, inst := range c.modifiers {
		if inst.ID() != id {
			continue
		}
		if inst.Definition().Mandatory && c.requiredModifiers[id] {
			return shared.NewMandatoryModifierError(id)
		}
		c.modifiers = append(c.modifiers[:i], c.modifiers[i+1:]...)
		return nil
	}
	return shared.NewModifierError(
		fmt.Sprintf("modifier %s is not attached to component %s", id, c.def.ID))
}

// SetModifierValue adjusts an attached modifier's slider
func (c *Component) SetModifierValue(id string, value float64) error {
	inst, ok := c.ModifierInstance(id)
	if !ok {
		return shared.NewModifierError(
			fmt.Sprintf("modifier %s is not attached to component %s", id, c.def.ID))
	}
	return inst.SetValue(value)
}

// MarkModifierRequired records that the layer placement requires a modifier,
// blocking its detachment
func (c *Component) MarkModifierRequired(id string) {
	c.requiredModifiers[id] = true
}

// ClearModifierRequirement lifts a layer requirement, making the modifier
// detachable again
func (c *Component) ClearModifierRequirement(id string) {
	delete(c.requiredModifiers, id)
}

// Recalculate rederives every resolved attribute and ability stat from the
// definition and the currently-attached eligible modifiers. The five steps
// are each idempotent; calling Recalculate twice with identical inputs
// yields identical state.
func (c *Component) Recalculate(ctx formula.Context) {
	// Step 1: reset scalars and ability fields to definition defaults, then
	// evaluate formula-valued fields. A failing formula leaves its field at
	// the default; it never aborts the pipeline.
	mass := c.def.Mass
	hitPoints := c.def.HitPoints
	cost := c.def.Cost
	resolved := resolveAbilityDefinitions(c.def)

	for key, expr := range c.def.Formulas {
		v, err := formula.Eval(expr, ctx)
		if err != nil {
			continue
		}
		switch key {
		case "mass":
			mass = v
		case "hit_points":
			hitPoints = v
		case "cost":
			cost = v
		default:
			kind, field, ok := splitFormulaKey(key)
			if !ok {
				continue
			}
			for i := range resolved {
				if resolved[i].Kind == kind {
					resolved[i].Fields[field] = v
					break
				}
			}
		}
	}

	// Step 2: instantiate fresh abilities and carry runtime state forward
	// from existing instances of the same variant. Variants that disappeared
	// drop their state.
	fresh := make([]ability.Ability, 0, len(resolved))
	for _, adef := range resolved {
		a, err := ability.New(adef)
		if err != nil {
			// Definitions are validated at load; an invalid ability here
			// means the definition was corrupted, not a recoverable state.
			continue
		}
		fresh = append(fresh, a)
	}
	ability.CarryState(c.abilities, fresh)
	c.abilities = fresh

	// Step 3: combine effect multipliers from every attached modifier that
	// is still eligible, multiplicatively per stat key.
	mults := ability.Multipliers{}
	for _, inst := range c.modifiers {
		if !inst.Definition().EligibleFor(c) {
			continue
		}
		for key, v := range inst.EffectMultipliers() {
			if existing, ok := mults[key]; ok {
				mults[key] = existing * v
			} else {
				mults[key] = v
			}
		}
	}

	// Step 4: apply multipliers to component scalars, preserving absolute
	// damage already taken when the maximum shifts.
	damageTaken := 0.0
	if c.currentHP >= 0 {
		damageTaken = c.maxHitPoints - c.currentHP
	}
	c.mass = mass * mults.Get("mass_mult")
	c.maxHitPoints = hitPoints * mults.Get("hp_mult")
	c.cost = cost * mults.Get("cost_mult")
	c.currentHP = c.maxHitPoints - damageTaken
	if c.currentHP < 0 {
		c.currentHP = 0
	}

	// Step 5: apply multipliers to ability instances. Skipping this step
	// makes modifiers visibly change the component while silently leaving
	// ship-level combat stats untouched - those read ability instances.
	for _, a := range c.abilities {
		a.Recalculate(mults)
	}

	c.refreshStatus()
}

// resolveAbilityDefinitions deep-copies the definition's ability list so
// formula evaluation never mutates the shared definition
func resolveAbilityDefinitions(def *Definition) []ability.Definition {
	resolved := make([]ability.Definition, len(def.Abilities))
	for i, adef := range def.Abilities {
		fields := make(map[string]float64, len(adef.Fields))
		for k, v := range adef.Fields {
			fields[k] = v
		}
		resolved[i] = ability.Definition{Kind: adef.Kind, Fields: fields, Resource: adef.Resource}
	}
	return resolved
}

// TakeDamage decrements current HP. Status becomes Damaged below half of
// maximum and Destroyed at zero.
func (c *Component) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	c.currentHP -= amount
	if c.currentHP < 0 {
		c.currentHP = 0
	}
	c.refreshStatus()
}

func (c *Component) refreshStatus() {
	switch {
	case c.currentHP <= 0:
		c.status = StatusDestroyed
	case c.currentHP < c.maxHitPoints*0.5:
		c.status = StatusDamaged
	default:
		c.status = StatusNominal
	}
}

// SummaryRows returns presentation rows for the component followed by every
// ability's rows
func (c *Component) SummaryRows() []shared.SummaryRow {
	rows := []shared.SummaryRow{
		shared.NewSummaryRow("Mass", c.mass),
		shared.NewTextSummaryRow("Hit Points", fmt.Sprintf("%g / %g", c.currentHP, c.maxHitPoints)),
		shared.NewSummaryRow("Cost", c.cost),
		shared.NewTextSummaryRow("Status", string(c.status)),
	}
	for _, a := range c.abilities {
		rows = append(rows, a.SummaryRows()...)
	}
	return rows
}

// ModifierSnapshot is the persisted form of one attached modifier
type ModifierSnapshot struct {
	ModifierID string  `json:"modifier_id"`
	Value      float64 `json:"value"`
}

// Snapshot is the persisted form of a component slot: definition id and
// modifier values only, never resolved attributes or runtime objects.
type Snapshot struct {
	ComponentDefinitionID string             `json:"component_definition_id"`
	Modifiers             []ModifierSnapshot `json:"modifier_instances"`
}

// Snapshot captures the component's persistable state
func (c *Component) Snapshot() Snapshot {
	snap := Snapshot{ComponentDefinitionID: c.def.ID}
	for _, inst := range c.modifiers {
		snap.Modifiers = append(snap.Modifiers, ModifierSnapshot{
			ModifierID: inst.ID(),
			Value:      inst.Value(),
		})
	}
	return snap
}
