package vehicle

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
)

// DefinitionSource resolves every definition kind a snapshot references.
// The registry satisfies it.
type DefinitionSource interface {
	ComponentDefinition(id string) (*component.Definition, error)
	ModifierDefinition(id string) (*modifier.Definition, error)
	ClassDefinition(id string) (*ClassDefinition, error)
}

// FromSnapshot rebuilds a ship from its persisted form by rerunning the full
// recalculation pipeline, so derived state can never diverge from what the
// pipeline computes. A snapshot referencing a definition the source does not
// hold is structural corruption: a hard error, never defaulted around.
func FromSnapshot(snap Snapshot, defs DefinitionSource) (*Ship, error) {
	class, err := defs.ClassDefinition(snap.Class)
	if err != nil {
		return nil, err
	}

	ship, err := NewShip(snap.Name, class)
	if err != nil {
		return nil, err
	}
	if snap.ID != "" {
		ship.id = snap.ID
	}

	for _, slot := range snap.Slots {
		compDef, err := defs.ComponentDefinition(slot.Component.ComponentDefinitionID)
		if err != nil {
			return nil, err
		}
		c, err := ship.AddComponent(slot.Layer, compDef, defs)
		if err != nil {
			return nil, err
		}

		for _, m := range slot.Component.Modifiers {
			// Layer-required modifiers were auto-attached above; restore
			// their stored slider values instead of re-attaching.
			if inst, attached := c.ModifierInstance(m.ModifierID); attached {
				if inst.Definition().Derived {
					continue
				}
				if err := inst.SetValue(m.Value); err != nil {
					return nil, fmt.Errorf("restoring modifier %s: %w", m.ModifierID, err)
				}
				continue
			}

			modDef, err := defs.ModifierDefinition(m.ModifierID)
			if err != nil {
				return nil, err
			}
			value := m.Value
			if err := c.AttachModifier(modDef, &value); err != nil {
				return nil, fmt.Errorf("restoring modifier %s: %w", m.ModifierID, err)
			}
		}
	}

	ship.RecalculateAll()
	return ship, nil
}
