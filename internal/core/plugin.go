package core

import (
	"fmt"
	"sort"

	"github.com/mcasademont9/nomad-forematics/pkg/schema"
)

// Plugin describes a schema module contributing record sections, save-time
// normalizers, and validation rules.
type Plugin interface {
	Name() string
	Version() string
	Register(registry *PluginRegistry) error
}

// PluginRegistry accumulates plugin contributions during registration.
type PluginRegistry struct {
	sections    map[EntityType]schema.Section
	normalizers []Normalizer
	rules       []Rule
}

// NewPluginRegistry constructs a plugin registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{sections: make(map[EntityType]schema.Section)}
}

// RegisterSection validates and stores a deep copy of the section declared
// for an entity type.
func (r *PluginRegistry) RegisterSection(entity EntityType, section schema.Section) error {
	if entity == "" {
		return fmt.Errorf("entity type required")
	}
	if err := section.Validate(); err != nil {
		return fmt.Errorf("section %s: %w", section.Name, err)
	}
	if _, exists := r.sections[entity]; exists {
		return fmt.Errorf("section for %s already registered", entity)
	}
	r.sections[entity] = section.Clone()
	return nil
}

// RegisterNormalizer adds a save-time hook contributed by the plugin.
func (r *PluginRegistry) RegisterNormalizer(n Normalizer) {
	if n == nil {
		return
	}
	r.normalizers = append(r.normalizers, n)
}

// RegisterRule adds an in-transaction rule contributed by the plugin.
func (r *PluginRegistry) RegisterRule(rule Rule) {
	if rule == nil {
		return
	}
	r.rules = append(r.rules, rule)
}

// Sections returns deep copies of registered sections keyed by entity type.
func (r *PluginRegistry) Sections() map[EntityType]schema.Section {
	out := make(map[EntityType]schema.Section, len(r.sections))
	for entity, section := range r.sections {
		out[entity] = section.Clone()
	}
	return out
}

// Normalizers returns a copy of registered hooks in registration order.
func (r *PluginRegistry) Normalizers() []Normalizer {
	out := make([]Normalizer, len(r.normalizers))
	copy(out, r.normalizers)
	return out
}

// Rules returns a copy of registered rules.
func (r *PluginRegistry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// PluginMetadata stores metadata describing an installed plugin.
type PluginMetadata struct {
	Name     string
	Version  string
	Sections map[EntityType]schema.Section
}

// SectionNames returns the sorted section names the plugin contributed.
func (m PluginMetadata) SectionNames() []string {
	out := make([]string, 0, len(m.Sections))
	for _, section := range m.Sections {
		out = append(out, section.Name)
	}
	sort.Strings(out)
	return out
}
