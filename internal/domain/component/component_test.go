package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/formula"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

func engineDefinition() *component.Definition {
	return &component.Definition{
		ID:        "fusion_drive",
		Name:      "Fusion Drive",
		Mass:      120,
		HitPoints: 60,
		Cost:      800,
		Tags:      []string{"propulsion", "engine"},
		Abilities: []ability.Definition{
			{Kind: ability.KindCombatPropulsion, Fields: map[string]float64{"thrust": 100}},
		},
	}
}

func turretDefinition() *component.Definition {
	return &component.Definition{
		ID:        "pulse_turret",
		Name:      "Pulse Turret",
		Mass:      40,
		HitPoints: 30,
		Cost:      450,
		Tags:      []string{"weapon"},
		Abilities: []ability.Definition{
			{Kind: ability.KindProjectileWeapon, Fields: map[string]float64{
				"damage":      25,
				"range":       800,
				"reload_time": 4,
				"magazine":    12,
			}},
		},
	}
}

func overdriveModifier() *modifier.Definition {
	return &modifier.Definition{
		ID:      "overdrive",
		Name:    "Overdrive",
		Min:     0,
		Max:     3,
		Default: 1,
		Effects: map[string]string{
			"thrust_mult": "1 + 0.5 * value",
			"mass_mult":   "1 + 0.05 * value",
		},
	}
}

func TestNew_InstantiatesAbilitiesImmediately(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})

	assert.True(t, c.HasAbility(ability.KindCombatPropulsion))
	assert.True(t, c.Operational())
	assert.Equal(t, component.StatusNominal, c.Status())
	assert.InDelta(t, 60.0, c.CurrentHP(), 1e-9)
	assert.NotEmpty(t, c.InstanceID())
}

func TestRecalculate_Idempotent(t *testing.T) {
	def := turretDefinition()
	ctx := formula.Context{"ship_class_mass": 50000}
	c := component.New(def, ctx)

	mod := overdriveModifier()
	mod.Effects = map[string]string{"damage_mult": "1 + 0.1 * value"}
	require.NoError(t, c.AttachModifier(mod, nil))
	c.Recalculate(ctx)

	weapon, _ := c.Ability(ability.KindProjectileWeapon)
	w := weapon.(*ability.Weapon)
	w.Fire()
	w.Tick(1)

	beforeMass := c.Mass()
	beforeDamage := w.Damage()
	beforeState := w.State()

	c.Recalculate(ctx)
	c.Recalculate(ctx)

	after, _ := c.Ability(ability.KindProjectileWeapon)
	afterWeapon := after.(*ability.Weapon)
	assert.Equal(t, beforeMass, c.Mass())
	assert.Equal(t, beforeDamage, afterWeapon.Damage())
	assert.Equal(t, beforeState, afterWeapon.State())
}

func TestRecalculate_ModifierReachesAbilityInstances(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})

	require.NoError(t, c.AttachModifier(overdriveModifier(), nil))
	c.Recalculate(formula.Context{})

	// The multiplier must land on the ability instance, not only the
	// component scalars: ship stats read ability instances directly.
	thruster, ok := c.Ability(ability.KindCombatPropulsion)
	require.True(t, ok)
	assert.InDelta(t, 150.0, thruster.(*ability.CombatPropulsion).Thrust(), 1e-9)
	assert.InDelta(t, 126.0, c.Mass(), 1e-9)
}

func TestRecalculate_CooldownSurvivesUnrelatedModifierAttach(t *testing.T) {
	c := component.New(turretDefinition(), formula.Context{})

	weapon, _ := c.Ability(ability.KindProjectileWeapon)
	w := weapon.(*ability.Weapon)
	require.True(t, w.Fire().Fired)
	w.Tick(1.5)
	require.InDelta(t, 2.5, w.State().CooldownRemaining, 1e-9)

	armorPlating := &modifier.Definition{
		ID:      "armor_plating",
		Min:     0,
		Max:     1,
		Default: 1,
		Effects: map[string]string{"hp_mult": "1 + 0.5 * value"},
	}
	require.NoError(t, c.AttachModifier(armorPlating, nil))
	c.Recalculate(formula.Context{})

	rebuilt, _ := c.Ability(ability.KindProjectileWeapon)
	state := rebuilt.(*ability.Weapon).State()
	assert.InDelta(t, 2.5, state.CooldownRemaining, 1e-9)
	assert.InDelta(t, 11.0, state.AmmoRemaining, 1e-9)
	assert.InDelta(t, 45.0, c.MaxHitPoints(), 1e-9)
}

func TestRecalculate_FormulaFieldsFromUpstreamContext(t *testing.T) {
	def := engineDefinition()
	def.Formulas = map[string]string{
		"mass":                     "0.002 * ship_class_mass",
		"combat_propulsion.thrust": "0.01 * ship_class_mass",
	}

	c := component.New(def, formula.Context{"ship_class_mass": 50000})

	assert.InDelta(t, 100.0, c.Mass(), 1e-9)
	thruster, _ := c.Ability(ability.KindCombatPropulsion)
	assert.InDelta(t, 500.0, thruster.(*ability.CombatPropulsion).Thrust(), 1e-9)
}

func TestRecalculate_UnwhitelistedNameFallsBackToDefault(t *testing.T) {
	def := engineDefinition()
	def.Formulas = map[string]string{
		"mass": "0.5 * enemy_ship_mass", // not a whitelisted upstream value
	}

	c := component.New(def, formula.Context{"ship_class_mass": 50000})

	assert.InDelta(t, 120.0, c.Mass(), 1e-9, "field keeps its definition default")
}

func TestAttachModifier_IneligibleLeavesComponentUnchanged(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	beforeMass := c.Mass()

	weaponsOnly := overdriveModifier()
	weaponsOnly.Restriction = modifier.Restriction{
		AllowAbilities: []ability.Kind{ability.KindProjectileWeapon},
	}

	err := c.AttachModifier(weaponsOnly, nil)

	var ineligible *shared.IneligibleModifierError
	require.ErrorAs(t, err, &ineligible)
	assert.Empty(t, c.Modifiers())

	c.Recalculate(formula.Context{})
	assert.Equal(t, beforeMass, c.Mass())
}

func TestAttachModifier_RejectsDuplicate(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	require.NoError(t, c.AttachModifier(overdriveModifier(), nil))

	err := c.AttachModifier(overdriveModifier(), nil)

	assert.Error(t, err)
	assert.Len(t, c.Modifiers(), 1)
}

func TestAttachModifier_OutOfRangeInitialRejected(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	bad := 99.0

	err := c.AttachModifier(overdriveModifier(), &bad)

	var rangeErr *shared.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Empty(t, c.Modifiers())
}

func TestSetModifierValue_OutOfRangeLeavesValue(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	require.NoError(t, c.AttachModifier(overdriveModifier(), nil))

	err := c.SetModifierValue("overdrive", 7)

	var rangeErr *shared.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	inst, _ := c.ModifierInstance("overdrive")
	assert.InDelta(t, 1.0, inst.Value(), 1e-9)
}

func TestDetachModifier_MandatoryStillRequired(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})

	shielding := &modifier.Definition{
		ID:        "radiation_shielding",
		Mandatory: true,
		Min:       0,
		Max:       0,
		Default:   0,
		Effects:   map[string]string{"mass_mult": "1.1"},
	}
	require.NoError(t, c.AttachModifier(shielding, nil))
	c.MarkModifierRequired("radiation_shielding")

	err := c.DetachModifier("radiation_shielding")
	var mandatory *shared.MandatoryModifierError
	require.ErrorAs(t, err, &mandatory)

	// Once the requirement is lifted the modifier detaches normally.
	c.ClearModifierRequirement("radiation_shielding")
	assert.NoError(t, c.DetachModifier("radiation_shielding"))
}

func TestRecalculate_MultipleModifiersCombineMultiplicatively(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})

	first := overdriveModifier()
	second := &modifier.Definition{
		ID:      "tuned_injectors",
		Min:     0,
		Max:     1,
		Default: 1,
		Effects: map[string]string{"thrust_mult": "1 + 0.2 * value"},
	}
	require.NoError(t, c.AttachModifier(first, nil))
	require.NoError(t, c.AttachModifier(second, nil))
	c.Recalculate(formula.Context{})

	thruster, _ := c.Ability(ability.KindCombatPropulsion)
	// 100 * 1.5 * 1.2
	assert.InDelta(t, 180.0, thruster.(*ability.CombatPropulsion).Thrust(), 1e-9)
}

func TestTakeDamage_StatusTransitions(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	require.InDelta(t, 60.0, c.MaxHitPoints(), 1e-9)

	c.TakeDamage(20)
	assert.Equal(t, component.StatusNominal, c.Status())

	c.TakeDamage(15) // 25 remaining, below half of 60
	assert.Equal(t, component.StatusDamaged, c.Status())
	assert.True(t, c.Operational())

	c.TakeDamage(100)
	assert.Equal(t, component.StatusDestroyed, c.Status())
	assert.InDelta(t, 0.0, c.CurrentHP(), 1e-9)
	assert.False(t, c.Operational())
}

func TestRecalculate_DamagePreservedAcrossRebuild(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	c.TakeDamage(10)
	require.InDelta(t, 50.0, c.CurrentHP(), 1e-9)

	c.Recalculate(formula.Context{})

	assert.InDelta(t, 50.0, c.CurrentHP(), 1e-9)
}

func TestSnapshot_DefinitionIDAndModifierValuesOnly(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})
	require.NoError(t, c.AttachModifier(overdriveModifier(), nil))
	require.NoError(t, c.SetModifierValue("overdrive", 2))

	snap := c.Snapshot()

	assert.Equal(t, "fusion_drive", snap.ComponentDefinitionID)
	require.Len(t, snap.Modifiers, 1)
	assert.Equal(t, "overdrive", snap.Modifiers[0].ModifierID)
	assert.InDelta(t, 2.0, snap.Modifiers[0].Value, 1e-9)
}

func TestSummaryRows_IncludesAbilityRows(t *testing.T) {
	c := component.New(engineDefinition(), formula.Context{})

	rows := c.SummaryRows()

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	assert.Contains(t, labels, "Mass")
	assert.Contains(t, labels, "Thrust")
}
