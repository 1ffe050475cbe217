package vehicle

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/formula"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// ModifierSource resolves modifier definitions by id. The registry satisfies
// it; tests may supply a map-backed fake.
type ModifierSource interface {
	ModifierDefinition(id string) (*modifier.Definition, error)
}

// Placement is one occupied slot: a component and the layer holding it
type Placement struct {
	Layer     string
	Component *component.Component
}

// Ship is a design under construction or in battle: a vehicle class plus
// placed components. All mutation is synchronous and single-owner; the ship
// recalculates affected components after every structural edit.
type Ship struct {
	id         string
	name       string
	class      *ClassDefinition
	placements []Placement
}

// NewShip creates an empty design for a vehicle class
func NewShip(name string, class *ClassDefinition) (*Ship, error) {
	if class == nil {
		return nil, shared.NewVehicleError("vehicle class cannot be nil")
	}
	if err := class.Validate(); err != nil {
		return nil, err
	}
	return &Ship{
		id:    uuid.NewString(),
		name:  name,
		class: class,
	}, nil
}

func (s *Ship) ID() string {
	return s.id
}

func (s *Ship) Name() string {
	return s.name
}

func (s *Ship) Class() *ClassDefinition {
	return s.class
}

// FormulaContext is the whitelist of upstream values component formulas may
// reference. Currently only the class mass budget.
func (s *Ship) FormulaContext() formula.Context {
	return formula.Context{"ship_class_mass": s.class.MassBudget}
}

// Placements returns every occupied slot in placement order
func (s *Ship) Placements() []Placement {
	return s.placements
}

// Components returns every placed component in placement order
func (s *Ship) Components() []*component.Component {
	out := make([]*component.Component, len(s.placements))
	for i, p := range s.placements {
		out[i] = p.Component
	}
	return out
}

// LayerComponents returns the components placed into one layer
func (s *Ship) LayerComponents(layer string) []*component.Component {
	var out []*component.Component
	for _, p := range s.placements {
		if p.Layer == layer {
			out = append(out, p.Component)
		}
	}
	return out
}

// Component finds a placed component by instance id
func (s *Ship) Component(instanceID string) (*component.Component, bool) {
	for _, p := range s.placements {
		if p.Component.InstanceID() == instanceID {
			return p.Component, true
		}
	}
	return nil, false
}

// AddComponent places a component definition into a layer. The layer's
// required modifiers are auto-attached and marked mandatory; the new
// component is recalculated before the method returns.
func (s *Ship) AddComponent(layerName string, def *component.Definition, mods ModifierSource) (*component.Component, error) {
	layer, ok := s.class.Layer(layerName)
	if !ok {
		return nil, shared.NewUnknownLayerError(layerName)
	}
	if len(s.LayerComponents(layerName)) >= layer.Slots {
		return nil, shared.NewLayerFullError(layerName, layer.Slots)
	}

	c := component.New(def, s.FormulaContext())

	for _, modID := range layer.RequiredModifiers {
		modDef, err := mods.ModifierDefinition(modID)
		if err != nil {
			return nil, err
		}
		if err := c.AttachModifier(modDef, nil); err != nil {
			return nil, fmt.Errorf("auto-attaching required modifier %s: %w", modID, err)
		}
		c.MarkModifierRequired(modID)
	}

	c.Recalculate(s.FormulaContext())
	s.placements = append(s.placements, Placement{Layer: layerName, Component: c})
	return c, nil
}

// RemoveComponent removes a placed component; its modifier instances die
// with it
func (s *Ship) RemoveComponent(instanceID string) error {
	for i, p := range s.placements {
		if p.Component.InstanceID() == instanceID {
			s.placements = append(s.placements[:i], s.placements[i+1:]...)
			return nil
		}
	}
	return shared.NewVehicleError(fmt.Sprintf("no component with instance id %s", instanceID))
}

// RecalculateAll reruns the pipeline on every component, then returns fresh
// ship stats. Used after upstream inputs change (class mass budget) and on
// design load.
func (s *Ship) RecalculateAll() ShipStats {
	ctx := s.FormulaContext()
	for _, p := range s.placements {
		p.Component.Recalculate(ctx)
	}
	return ComputeStats(s)
}

// MissingRequiredAbilities lists class-required ability kinds no placed
// component provides
func (s *Ship) MissingRequiredAbilities() []ability.Kind {
	var missing []ability.Kind
	for _, kind := range s.class.RequiredAbilities {
		found := false
		for _, p := range s.placements {
			if p.Component.HasAbility(kind) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, kind)
		}
	}
	return missing
}

// SortedByDamagePriority returns components ordered for display and damage
// application: propulsion-bearing components first, judged by ability
// presence, with placement order preserved otherwise.
func (s *Ship) SortedByDamagePriority() []*component.Component {
	out := s.Components()
	sort.SliceStable(out, func(i, j int) bool {
		return propulsionScore(out[i]) > propulsionScore(out[j])
	})
	return out
}

func propulsionScore(c *component.Component) int {
	if c.HasAbility(ability.KindCombatPropulsion) || c.HasAbility(ability.KindManeuveringThruster) {
		return 1
	}
	return 0
}

// Snapshot is the persisted form of a design: class id plus per-slot
// component definition ids and modifier values. Derived values are never
// serialized; loading reruns the full recalculation pipeline.
type Snapshot struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Class string         `json:"class"`
	Slots []SlotSnapshot `json:"slots"`
}

// SlotSnapshot is one occupied slot in a design snapshot
type SlotSnapshot struct {
	Layer     string             `json:"layer"`
	Component component.Snapshot `json:"component"`
}

// Snapshot captures the ship's persistable state
func (s *Ship) Snapshot() Snapshot {
	snap := Snapshot{ID: s.id, Name: s.name, Class: s.class.ID}
	for _, p := range s.placements {
		snap.Slots = append(snap.Slots, SlotSnapshot{
			Layer:     p.Layer,
			Component: p.Component.Snapshot(),
		})
	}
	return snap
}
