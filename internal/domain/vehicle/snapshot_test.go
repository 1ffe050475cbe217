package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/registry"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
)

const roundTripDefinitions = `
components:
  - id: fusion_drive
    mass: 120
    hit_points: 60
    cost: 800
    tags: [propulsion]
    abilities:
      - kind: combat_propulsion
        fields:
          thrust: 500
  - id: bridge
    mass: 80
    hit_points: 50
    cost: 1200
    abilities:
      - kind: command_and_control

modifiers:
  - id: overdrive
    min: 0
    max: 3
    default: 1
    effects:
      thrust_mult: "1 + 0.5 * value"

classes:
  - id: frigate
    mass_budget: 50000
    layers:
      - name: hull
        slots: 2
      - name: systems
        slots: 4
`

func TestFromSnapshot_RoundTripPreservesStats(t *testing.T) {
	reg := registry.New()
	require.NoError(t, registry.LoadBytes(reg, []byte(roundTripDefinitions)))

	ship, err := vehicle.NewShip("Dauntless", mustClass(t, reg, "frigate"))
	require.NoError(t, err)

	engineDef, err := reg.ComponentDefinition("fusion_drive")
	require.NoError(t, err)
	bridgeDef, err := reg.ComponentDefinition("bridge")
	require.NoError(t, err)

	engine, err := ship.AddComponent("hull", engineDef, reg)
	require.NoError(t, err)
	_, err = ship.AddComponent("systems", bridgeDef, reg)
	require.NoError(t, err)

	overdrive, err := reg.ModifierDefinition("overdrive")
	require.NoError(t, err)
	require.NoError(t, engine.AttachModifier(overdrive, nil))
	require.NoError(t, engine.SetModifierValue("overdrive", 2))
	before := ship.RecalculateAll()

	restored, err := vehicle.FromSnapshot(ship.Snapshot(), reg)
	require.NoError(t, err)

	after := vehicle.ComputeStats(restored)
	assert.Equal(t, before, after)
	assert.Equal(t, ship.ID(), restored.ID())
	assert.InDelta(t, 1000.0, after.TotalThrust, 1e-9, "500 * (1 + 0.5*2)")
}

func TestFromSnapshot_DanglingComponentDefinitionIsFatal(t *testing.T) {
	reg := registry.New()
	require.NoError(t, registry.LoadBytes(reg, []byte(roundTripDefinitions)))

	snap := vehicle.Snapshot{
		Name:  "Ghost",
		Class: "frigate",
		Slots: []vehicle.SlotSnapshot{
			{Layer: "hull", Component: component.Snapshot{ComponentDefinitionID: "deleted_definition"}},
		},
	}

	_, err := vehicle.FromSnapshot(snap, reg)

	var unknown *shared.UnknownDefinitionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "deleted_definition", unknown.ID)
}

func TestFromSnapshot_UnknownClassIsFatal(t *testing.T) {
	reg := registry.New()

	_, err := vehicle.FromSnapshot(vehicle.Snapshot{Class: "dreadnought"}, reg)

	var unknown *shared.UnknownDefinitionError
	assert.ErrorAs(t, err, &unknown)
}

func mustClass(t *testing.T, reg *registry.Registry, id string) *vehicle.ClassDefinition {
	t.Helper()
	class, err := reg.ClassDefinition(id)
	require.NoError(t, err)
	return class
}
