package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
)

// mapModifierSource backs ModifierSource with a plain map for tests
type mapModifierSource map[string]*modifier.Definition

func (m mapModifierSource) ModifierDefinition(id string) (*modifier.Definition, error) {
	def, ok := m[id]
	if !ok {
		return nil, shared.NewUnknownDefinitionError("modifier", id)
	}
	return def, nil
}

func frigateClass() *vehicle.ClassDefinition {
	return &vehicle.ClassDefinition{
		ID:         "frigate",
		Name:       "Frigate",
		MassBudget: 50000,
		Layers: []vehicle.Layer{
			{Name: "hull", Slots: 2},
			{Name: "systems", Slots: 4},
		},
	}
}

func engineDef() *component.Definition {
	return &component.Definition{
		ID:        "fusion_drive",
		Mass:      120,
		HitPoints: 60,
		Cost:      800,
		Tags:      []string{"propulsion"},
		Abilities: []ability.Definition{
			{Kind: ability.KindCombatPropulsion, Fields: map[string]float64{"thrust": 500}},
		},
	}
}

func cargoDef() *component.Definition {
	return &component.Definition{
		ID:        "fuel_tank",
		Mass:      30,
		HitPoints: 20,
		Cost:      100,
		Tags:      []string{"storage"},
		Abilities: []ability.Definition{
			{Kind: ability.KindResourceStorage, Resource: shared.ResourceFuel,
				Fields: map[string]float64{"max_amount": 400}},
		},
	}
}

func TestNewShip_RejectsInvalidClass(t *testing.T) {
	_, err := vehicle.NewShip("Dauntless", &vehicle.ClassDefinition{ID: "bad"})

	assert.Error(t, err)
}

func TestAddComponent_UnknownLayer(t *testing.T) {
	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)

	_, err = ship.AddComponent("warp_core", engineDef(), mapModifierSource{})

	var unknownLayer *shared.UnknownLayerError
	assert.ErrorAs(t, err, &unknownLayer)
}

func TestAddComponent_LayerCapacity(t *testing.T) {
	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)

	_, err = ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)
	_, err = ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)

	_, err = ship.AddComponent("hull", engineDef(), mapModifierSource{})
	var full *shared.LayerFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, "hull", full.Layer)
}

func TestAddComponent_AutoAttachesRequiredModifiers(t *testing.T) {
	class := frigateClass()
	class.Layers[0].RequiredModifiers = []string{"radiation_shielding"}

	mods := mapModifierSource{
		"radiation_shielding": {
			ID:        "radiation_shielding",
			Mandatory: true,
			Effects:   map[string]string{"mass_mult": "1.1"},
		},
	}

	ship, err := vehicle.NewShip("Dauntless", class)
	require.NoError(t, err)

	c, err := ship.AddComponent("hull", engineDef(), mods)
	require.NoError(t, err)

	_, attached := c.ModifierInstance("radiation_shielding")
	assert.True(t, attached)
	assert.InDelta(t, 132.0, c.Mass(), 1e-9, "required modifier applied before return")

	err = c.DetachModifier("radiation_shielding")
	var mandatory *shared.MandatoryModifierError
	assert.ErrorAs(t, err, &mandatory)
}

func TestAddComponent_UnknownRequiredModifierIsHardError(t *testing.T) {
	class := frigateClass()
	class.Layers[0].RequiredModifiers = []string{"does_not_exist"}

	ship, err := vehicle.NewShip("Dauntless", class)
	require.NoError(t, err)

	_, err = ship.AddComponent("hull", engineDef(), mapModifierSource{})

	var unknown *shared.UnknownDefinitionError
	assert.ErrorAs(t, err, &unknown)
}

func TestAddComponent_FormulaSeesClassMassBudget(t *testing.T) {
	def := engineDef()
	def.Formulas = map[string]string{"mass": "0.002 * ship_class_mass"}

	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)

	c, err := ship.AddComponent("hull", def, mapModifierSource{})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, c.Mass(), 1e-9)
}

func TestRemoveComponent(t *testing.T) {
	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)
	c, err := ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)

	require.NoError(t, ship.RemoveComponent(c.InstanceID()))
	assert.Empty(t, ship.Components())

	assert.Error(t, ship.RemoveComponent(c.InstanceID()))
}

func TestMissingRequiredAbilities(t *testing.T) {
	class := frigateClass()
	class.RequiredAbilities = []ability.Kind{ability.KindCommandAndControl}

	ship, err := vehicle.NewShip("Dauntless", class)
	require.NoError(t, err)
	_, err = ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)

	missing := ship.MissingRequiredAbilities()

	assert.Equal(t, []ability.Kind{ability.KindCommandAndControl}, missing)
}

func TestSortedByDamagePriority_PropulsionFirst(t *testing.T) {
	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)

	tank, err := ship.AddComponent("systems", cargoDef(), mapModifierSource{})
	require.NoError(t, err)
	engine, err := ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)

	sorted := ship.SortedByDamagePriority()

	require.Len(t, sorted, 2)
	assert.Equal(t, engine.InstanceID(), sorted[0].InstanceID())
	assert.Equal(t, tank.InstanceID(), sorted[1].InstanceID())
}

func TestSnapshot_RoundTripShape(t *testing.T) {
	ship, err := vehicle.NewShip("Dauntless", frigateClass())
	require.NoError(t, err)
	c, err := ship.AddComponent("hull", engineDef(), mapModifierSource{})
	require.NoError(t, err)

	overdrive := &modifier.Definition{
		ID:      "overdrive",
		Min:     0,
		Max:     3,
		Default: 1,
		Effects: map[string]string{"thrust_mult": "1 + 0.5 * value"},
	}
	require.NoError(t, c.AttachModifier(overdrive, nil))

	snap := ship.Snapshot()

	assert.Equal(t, "frigate", snap.Class)
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, "hull", snap.Slots[0].Layer)
	assert.Equal(t, "fusion_drive", snap.Slots[0].Component.ComponentDefinitionID)
	require.Len(t, snap.Slots[0].Component.Modifiers, 1)
	assert.Equal(t, "overdrive", snap.Slots[0].Component.Modifiers[0].ModifierID)
}
