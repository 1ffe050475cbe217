package modifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// fakeTarget implements modifier.Target for restriction tests
type fakeTarget struct {
	defID     string
	tags      map[string]bool
	abilities map[ability.Kind]bool
}

func (f *fakeTarget) DefinitionID() string           { return f.defID }
func (f *fakeTarget) HasTag(tag string) bool         { return f.tags[tag] }
func (f *fakeTarget) HasAbility(k ability.Kind) bool { return f.abilities[k] }

func reinforcedDef() *modifier.Definition {
	return &modifier.Definition{
		ID:      "reinforced",
		Name:    "Reinforced",
		Min:     0,
		Max:     3,
		Default: 1,
		Effects: map[string]string{
			"hp_mult":   "1 + 0.2 * value",
			"mass_mult": "1 + 0.1 * value",
		},
	}
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*modifier.Definition)
		wantErr bool
	}{
		{"valid", func(d *modifier.Definition) {}, false},
		{"empty id", func(d *modifier.Definition) { d.ID = "" }, true},
		{"min above max", func(d *modifier.Definition) { d.Min = 5 }, true},
		{"default out of range", func(d *modifier.Definition) { d.Default = 9 }, true},
		{"no effects", func(d *modifier.Definition) { d.Effects = nil }, true},
		{"bad restriction kind", func(d *modifier.Definition) {
			d.Restriction.AllowAbilities = []ability.Kind{"warp_drive"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := reinforcedDef()
			tt.mutate(def)

			err := def.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRestriction_Allows(t *testing.T) {
	weaponized := &fakeTarget{
		defID:     "pulse_cannon",
		tags:      map[string]bool{"weapon": true},
		abilities: map[ability.Kind]bool{ability.KindProjectileWeapon: true},
	}
	engine := &fakeTarget{
		defID:     "fusion_drive",
		tags:      map[string]bool{"propulsion": true},
		abilities: map[ability.Kind]bool{ability.KindCombatPropulsion: true},
	}

	tests := []struct {
		name        string
		restriction modifier.Restriction
		target      modifier.Target
		allowed     bool
	}{
		{"empty allows all", modifier.Restriction{}, engine, true},
		{"allow ability match", modifier.Restriction{
			AllowAbilities: []ability.Kind{ability.KindProjectileWeapon},
		}, weaponized, true},
		{"allow ability miss", modifier.Restriction{
			AllowAbilities: []ability.Kind{ability.KindProjectileWeapon},
		}, engine, false},
		{"deny ability", modifier.Restriction{
			DenyAbilities: []ability.Kind{ability.KindCombatPropulsion},
		}, engine, false},
		{"allow tag", modifier.Restriction{AllowTags: []string{"propulsion"}}, engine, true},
		{"deny tag", modifier.Restriction{DenyTags: []string{"weapon"}}, weaponized, false},
		{"allow component id", modifier.Restriction{
			AllowComponents: []string{"fusion_drive"},
		}, engine, true},
		{"deny component id", modifier.Restriction{
			DenyComponents: []string{"fusion_drive"},
		}, engine, false},
		{"deny wins over allow", modifier.Restriction{
			AllowTags:     []string{"weapon"},
			DenyAbilities: []ability.Kind{ability.KindProjectileWeapon},
		}, weaponized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.restriction.Allows(tt.target))
		})
	}
}

func TestInstance_ValueLifecycle(t *testing.T) {
	def := reinforcedDef()

	inst, err := modifier.NewInstance(def, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, inst.Value(), 1e-9)

	require.NoError(t, inst.SetValue(3))
	assert.InDelta(t, 3.0, inst.Value(), 1e-9)

	err = inst.SetValue(4)
	require.Error(t, err)
	var rangeErr *shared.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.InDelta(t, 3.0, inst.Value(), 1e-9, "value unchanged after rejected set")
}

func TestNewInstance_RejectsOutOfRangeInitial(t *testing.T) {
	def := reinforcedDef()
	bad := 12.0

	_, err := modifier.NewInstance(def, &bad)

	var rangeErr *shared.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestInstance_DerivedIsReadOnly(t *testing.T) {
	def := reinforcedDef()
	def.Derived = true

	inst, err := modifier.NewInstance(def, nil)
	require.NoError(t, err)

	assert.Error(t, inst.SetValue(2))
}

func TestInstance_EffectMultipliers(t *testing.T) {
	def := reinforcedDef()
	inst, err := modifier.NewInstance(def, nil)
	require.NoError(t, err)
	require.NoError(t, inst.SetValue(2))

	mults := inst.EffectMultipliers()

	assert.InDelta(t, 1.4, mults["hp_mult"], 1e-9)
	assert.InDelta(t, 1.2, mults["mass_mult"], 1e-9)
}

func TestInstance_BrokenEffectFormulaIsSkipped(t *testing.T) {
	def := reinforcedDef()
	def.Effects["thrust_mult"] = "1 + other_component_thrust"

	inst, err := modifier.NewInstance(def, nil)
	require.NoError(t, err)

	mults := inst.EffectMultipliers()

	_, present := mults["thrust_mult"]
	assert.False(t, present, "failing formula contributes nothing")
	assert.InDelta(t, 1.2, mults["hp_mult"], 1e-9, "other effects still evaluate")
}
