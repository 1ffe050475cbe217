package modifier

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/ability"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Restriction limits which components a modifier may attach to. Deny rules
// are checked first and reject on any match; a non-empty allow list then
// requires at least one match. An empty restriction allows every component.
type Restriction struct {
	AllowAbilities []ability.Kind `yaml:"allow_abilities"`
	DenyAbilities  []ability.Kind `yaml:"deny_abilities"`

	AllowTags []string `yaml:"allow_tags"`
	DenyTags  []string `yaml:"deny_tags"`

	AllowComponents []string `yaml:"allow_components"`
	DenyComponents  []string `yaml:"deny_components"`
}

// Validate checks that every listed ability kind names a known variant
func (r Restriction) Validate() error {
	for _, k := range r.AllowAbilities {
		if !k.IsValid() {
			return shared.NewValidationError("allow_abilities",
				fmt.Sprintf("unknown ability kind %q", k))
		}
	}
	for _, k := range r.DenyAbilities {
		if !k.IsValid() {
			return shared.NewValidationError("deny_abilities",
				fmt.Sprintf("unknown ability kind %q", k))
		}
	}
	return nil
}

// Allows evaluates the restriction against a component view
func (r Restriction) Allows(t Target) bool {
	for _, k := range r.DenyAbilities {
		if t.HasAbility(k) {
			return false
		}
	}
	for _, tag := range r.DenyTags {
		if t.HasTag(tag) {
			return false
		}
	}
	for _, id := range r.DenyComponents {
		if t.DefinitionID() == id {
			return false
		}
	}

	if len(r.AllowAbilities) > 0 {
		found := false
		for _, k := range r.AllowAbilities {
			if t.HasAbility(k) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.AllowTags) > 0 {
		found := false
		for _, tag := range r.AllowTags {
			if t.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.AllowComponents) > 0 {
		found := false
		for _, id := range r.AllowComponents {
			if t.DefinitionID() == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
