// Package opv contributes the organic photovoltaics record schemas and
// their save-time behaviour: substrate batch expansion, unit-aware solution
// composition, the standard cleaning protocol, sample propagation into
// fabrication steps, and experiment narrative defaults.
package opv

import (
	"github.com/mcasademont9/nomad-forematics/internal/core"
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// Category is the ELN category all contributed sections file under.
const Category = "ICMAB Forematics"

// Plugin implements the OPV fabrication module.
type Plugin struct{}

// New constructs an OPV plugin instance.
func New() Plugin {
	return Plugin{}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "opv" }

// Version returns the plugin semantic version.
func (Plugin) Version() string { return "0.1.0" }

// Register wires the OPV sections, normalizers, and rules. Normalizer order
// matters for cleaning records: protocol expansion runs before sample
// propagation so a Standard record ends up with both steps and samples.
func (Plugin) Register(registry *core.PluginRegistry) error {
	for entity, section := range sections() {
		if err := registry.RegisterSection(entity, section); err != nil {
			return err
		}
	}

	registry.RegisterNormalizer(substrateDimensionsHook{})
	registry.RegisterNormalizer(batchExpansionHook{})
	registry.RegisterNormalizer(solutionCompositionHook{})
	registry.RegisterNormalizer(standardProtocolHook{})
	registry.RegisterNormalizer(samplePropagationHook{entity: domain.EntityCleaning})
	registry.RegisterNormalizer(samplePropagationHook{entity: domain.EntityBladeCoating})
	registry.RegisterNormalizer(samplePropagationHook{entity: domain.EntitySpinCoating})
	registry.RegisterNormalizer(samplePropagationHook{entity: domain.EntityAnnealing})
	registry.RegisterNormalizer(narrativeDefaultsHook{})

	registry.RegisterRule(componentRatioRule{})
	registry.RegisterRule(batchInventoryRule{})
	registry.RegisterRule(experimentReferenceRule{})
	return nil
}
