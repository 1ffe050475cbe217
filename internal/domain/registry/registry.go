package registry

import (
	"sort"

	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
)

// Registry is the explicitly-owned lookup of component, modifier and vehicle
// class definitions. It is passed by reference into whatever needs lookups,
// never a process-wide singleton.
//
// Freeze makes the registry read-only: the host freezes after bootstrap so
// recalculation can rely on definitions staying immutable, and tests cannot
// leak definitions into each other. The flag is checked on every mutating
// call; reads are always allowed.
type Registry struct {
	components map[string]*component.Definition
	modifiers  map[string]*modifier.Definition
	classes    map[string]*vehicle.ClassDefinition
	frozen     bool
}

// New creates an empty, unfrozen registry
func New() *Registry {
	return &Registry{
		components: make(map[string]*component.Definition),
		modifiers:  make(map[string]*modifier.Definition),
		classes:    make(map[string]*vehicle.ClassDefinition),
	}
}

// Freeze makes every subsequent mutating call fail
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry is read-only
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Clear drops every definition. Rejected when frozen.
func (r *Registry) Clear() error {
	if r.frozen {
		return shared.NewRegistryFrozenError()
	}
	r.components = make(map[string]*component.Definition)
	r.modifiers = make(map[string]*modifier.Definition)
	r.classes = make(map[string]*vehicle.ClassDefinition)
	return nil
}

// RegisterComponent validates and stores a component definition
func (r *Registry) RegisterComponent(def *component.Definition) error {
	if r.frozen {
		return shared.NewRegistryFrozenError()
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.components[def.ID] = def
	return nil
}

// RegisterModifier validates and stores a modifier definition
func (r *Registry) RegisterModifier(def *modifier.Definition) error {
	if r.frozen {
		return shared.NewRegistryFrozenError()
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.modifiers[def.ID] = def
	return nil
}

// RegisterClass validates and stores a vehicle class definition
func (r *Registry) RegisterClass(def *vehicle.ClassDefinition) error {
	if r.frozen {
		return shared.NewRegistryFrozenError()
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.classes[def.ID] = def
	return nil
}

// ComponentDefinition looks up a component definition by id
func (r *Registry) ComponentDefinition(id string) (*component.Definition, error) {
	def, ok := r.components[id]
	if !ok {
		return nil, shared.NewUnknownDefinitionError("component", id)
	}
	return def, nil
}

// ModifierDefinition looks up a modifier definition by id. Satisfies
// vehicle.ModifierSource.
func (r *Registry) ModifierDefinition(id string) (*modifier.Definition, error) {
	def, ok := r.modifiers[id]
	if !ok {
		return nil, shared.NewUnknownDefinitionError("modifier", id)
	}
	return def, nil
}

// ClassDefinition looks up a vehicle class definition by id
func (r *Registry) ClassDefinition(id string) (*vehicle.ClassDefinition, error) {
	def, ok := r.classes[id]
	if !ok {
		return nil, shared.NewUnknownDefinitionError("vehicle class", id)
	}
	return def, nil
}

// ComponentIDs returns every component definition id, sorted
func (r *Registry) ComponentIDs() []string {
	return sortedKeys(r.components)
}

// ModifierIDs returns every modifier definition id, sorted
func (r *Registry) ModifierIDs() []string {
	return sortedKeys(r.modifiers)
}

// ClassIDs returns every vehicle class definition id, sorted
func (r *Registry) ClassIDs() []string {
	return sortedKeys(r.classes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckReferences verifies cross-definition links: every layer-required
// modifier must exist and be attachable automatically. A dangling reference
// is a hard bootstrap failure, not something to default around.
func (r *Registry) CheckReferences() error {
	for _, classID := range r.ClassIDs() {
		class := r.classes[classID]
		for _, layer := range class.Layers {
			for _, modID := range layer.RequiredModifiers {
				if _, ok := r.modifiers[modID]; !ok {
					return shared.NewUnknownDefinitionError("modifier", modID)
				}
			}
		}
	}
	return nil
}
