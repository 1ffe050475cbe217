package helpers

import (
	"testing"

	"github.com/andrescamacho/shipforge/internal/domain/registry"
)

// fixtureDefinitions is a small but representative definition set shared by
// integration tests.
const fixtureDefinitions = `
components:
  - id: fusion_drive
    name: Fusion Drive
    mass: 120
    hit_points: 60
    cost: 800
    tags: [propulsion]
    abilities:
      - kind: combat_propulsion
        fields:
          thrust: 500

  - id: railgun
    name: Railgun
    mass: 90
    hit_points: 40
    cost: 1500
    tags: [weapon, kinetic]
    abilities:
      - kind: projectile_weapon
        fields:
          damage: 40
          range: 1500
          reload_time: 2.5
          firing_arc: 90
          magazine: 12

  - id: bridge
    name: Command Bridge
    mass: 80
    hit_points: 50
    cost: 1200
    abilities:
      - kind: command_and_control
      - kind: crew_required
        fields:
          crew: 4

  - id: crew_quarters
    name: Crew Quarters
    mass: 60
    hit_points: 30
    cost: 400
    abilities:
      - kind: crew_capacity
        fields:
          capacity: 20
      - kind: life_support_capacity
        fields:
          capacity: 20

  - id: fuel_tank
    name: Fuel Tank
    mass: 40
    hit_points: 25
    cost: 300
    abilities:
      - kind: resource_storage
        resource: FUEL
        fields:
          capacity: 1000

modifiers:
  - id: overdrive
    name: Overdrive
    min: 0
    max: 3
    default: 1
    effects:
      thrust_mult: "1 + 0.5 * value"
    restriction:
      allow_abilities: [combat_propulsion]

  - id: reinforced_plating
    name: Reinforced Plating
    min: 0
    max: 2
    default: 0
    effects:
      hp_mult: "1 + 0.25 * value"
      mass_mult: "1 + 0.1 * value"

classes:
  - id: frigate
    name: Frigate
    mass_budget: 50000
    layers:
      - name: hull
        slots: 4
      - name: systems
        slots: 6
    required_abilities: [command_and_control]
`

// LoadFixtureRegistry creates a registry loaded with the shared fixture set
func LoadFixtureRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := registry.LoadBytes(reg, []byte(fixtureDefinitions)); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewTestRegistry creates a registry loaded with the shared fixture set,
// failing the test on error
func NewTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := LoadFixtureRegistry()
	if err != nil {
		t.Fatalf("failed to load fixture definitions: %v", err)
	}
	return reg
}
