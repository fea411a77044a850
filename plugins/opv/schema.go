package opv

import (
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
	"github.com/mcasademont9/nomad-forematics/pkg/schema"
)

// sections declares every record type the plugin contributes. Storage units
// are SI; display units match what lab users type into the ELN forms.
func sections() map[domain.EntityType]schema.Section {
	return map[domain.EntityType]schema.Section{
		domain.EntityPureSubstance:  pureSubstanceSection(),
		domain.EntitySubstrate:      substrateSection(),
		domain.EntitySubstrateBatch: substrateBatchSection(),
		domain.EntitySolution:       solutionSection(),
		domain.EntityCleaning:       cleaningSection(),
		domain.EntityBladeCoating:   bladeCoatingSection(),
		domain.EntitySpinCoating:    spinCoatingSection(),
		domain.EntityAnnealing:      annealingSection(),
		domain.EntityExperiment:     experimentSection(),
	}
}

func sizeEnum() []string {
	return []string{string(domain.SizeScaleUp), string(domain.SizeSpinCoating)}
}

func atmosphereEnum() []string {
	return []string{
		string(domain.AtmosphereGlovebox),
		string(domain.AtmosphereAir),
		string(domain.AtmosphereOther),
	}
}

func pureSubstanceSection() schema.Section {
	return schema.Section{
		Name:     "PureSubstance",
		Label:    "Pure substance",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "iupac_name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "cas_number", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "molecular_formula", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "density", Type: schema.TypeFloat, Unit: "kg/m^3", DisplayUnit: "g/ml", Component: schema.ComponentNumberEdit},
		},
	}
}

func substrateSection() schema.Section {
	return schema.Section{
		Name:     "Substrate",
		Label:    "Substrate",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "lab_id", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "supplier", Type: schema.TypeString, Default: domain.DefaultSupplier, Component: schema.ComponentStringEdit},
			{Name: "size", Type: schema.TypeEnum, Enum: sizeEnum(), Component: schema.ComponentRadioEnum},
			{Name: "length", Type: schema.TypeFloat, Unit: "m", DisplayUnit: "mm", Component: schema.ComponentNumberEdit},
			{Name: "width", Type: schema.TypeFloat, Unit: "m", DisplayUnit: "mm", Component: schema.ComponentNumberEdit},
			{Name: "depth", Type: schema.TypeFloat, Unit: "m", DisplayUnit: "mm", Component: schema.ComponentNumberEdit},
		},
	}
}

func substrateBatchSection() schema.Section {
	return schema.Section{
		Name:     "SubstrateBatch",
		Label:    "Substrate batch",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "supplier", Type: schema.TypeString, Default: domain.DefaultSupplier, Component: schema.ComponentStringEdit},
			{Name: "size", Type: schema.TypeEnum, Enum: sizeEnum(), Component: schema.ComponentRadioEnum},
			{Name: "lab_id", Type: schema.TypeString, Default: domain.DefaultBatchLabID, Description: "Prefix stamped onto generated substrate ids", Component: schema.ComponentStringEdit},
			{Name: "number_of_substrates", Type: schema.TypeInt, Component: schema.ComponentNumberEdit},
			{Name: "create_substrates", Type: schema.TypeBool, Description: "Set to generate the child substrates on save", Component: schema.ComponentBoolEdit},
			{Name: "entities", Type: schema.TypeRef, Target: "Substrate", Repeats: true, Component: schema.ComponentReferenceEdit},
		},
	}
}

func solutionSection() schema.Section {
	return schema.Section{
		Name:     "Solution",
		Label:    "Solution",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "total_volume", Type: schema.TypeFloat, Unit: "m^3", DisplayUnit: "ml", Default: domain.DefaultTotalVolumeML, Component: schema.ComponentNumberEdit},
			{Name: "solute_concentration", Type: schema.TypeFloat, Unit: "kg/m^3", DisplayUnit: "mg/ml", Default: domain.DefaultSoluteConcMgPerML, Component: schema.ComponentNumberEdit},
			{Name: "calculate_solution", Type: schema.TypeBool, Description: "Set to compute component volumes and masses on save", Component: schema.ComponentBoolEdit},
			{Name: "report", Type: schema.TypeString, Component: schema.ComponentRichTextEdit},
		},
		SubSections: []schema.SubSection{
			{Name: "solvents", Section: "SolventComponent", Repeats: true},
			{Name: "donors", Section: "OrganicComponent", Repeats: true},
			{Name: "acceptors", Section: "OrganicComponent", Repeats: true},
			{Name: "additives", Section: "AdditiveComponent", Repeats: true},
		},
	}
}

func cleaningSection() schema.Section {
	return schema.Section{
		Name:     "Cleaning",
		Label:    "Substrate cleaning",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "supplier", Type: schema.TypeString, Default: domain.DefaultSupplier, Component: schema.ComponentStringEdit},
			{Name: "substrate_batch", Type: schema.TypeRef, Target: "SubstrateBatch", Component: schema.ComponentReferenceEdit},
			{Name: "samples", Type: schema.TypeRef, Target: "Substrate", Repeats: true, Component: schema.ComponentReferenceEdit},
			{
				Name: "procedure", Type: schema.TypeEnum,
				Enum:      []string{string(domain.ProcedureStandard), string(domain.ProcedureCustom)},
				Default:   string(domain.ProcedureCustom),
				Component: schema.ComponentRadioEnum,
			},
		},
		SubSections: []schema.SubSection{
			{Name: "steps", Section: "CleaningStep", Repeats: true},
		},
	}
}

func bladeCoatingSection() schema.Section {
	return schema.Section{
		Name:     "BladeCoating",
		Label:    "Blade coating",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "substrate_batch", Type: schema.TypeRef, Target: "SubstrateBatch", Component: schema.ComponentReferenceEdit},
			{Name: "solution", Type: schema.TypeRef, Target: "Solution", Component: schema.ComponentReferenceEdit},
			{Name: "samples", Type: schema.TypeRef, Target: "Substrate", Repeats: true, Component: schema.ComponentReferenceEdit},
			{Name: "substrate_temperature", Type: schema.TypeFloat, Unit: "K", DisplayUnit: "degC", Component: schema.ComponentNumberEdit},
			{Name: "blade_speed", Type: schema.TypeFloat, Unit: "m/s", DisplayUnit: "mm/s", Component: schema.ComponentNumberEdit},
			{Name: "blade_gap", Type: schema.TypeFloat, Unit: "m", DisplayUnit: "um", Component: schema.ComponentNumberEdit},
			{Name: "atmosphere", Type: schema.TypeEnum, Enum: atmosphereEnum(), Component: schema.ComponentRadioEnum},
			{Name: "comments", Type: schema.TypeString, Component: schema.ComponentRichTextEdit},
		},
	}
}

func spinCoatingSection() schema.Section {
	return schema.Section{
		Name:     "SpinCoating",
		Label:    "Spin coating",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "substrate_batch", Type: schema.TypeRef, Target: "SubstrateBatch", Component: schema.ComponentReferenceEdit},
			{Name: "solution", Type: schema.TypeRef, Target: "Solution", Component: schema.ComponentReferenceEdit},
			{Name: "samples", Type: schema.TypeRef, Target: "Substrate", Repeats: true, Component: schema.ComponentReferenceEdit},
			{Name: "substrate_temperature", Type: schema.TypeFloat, Unit: "K", DisplayUnit: "degC", Component: schema.ComponentNumberEdit},
			{Name: "spin_speed", Type: schema.TypeFloat, Unit: "1/s", DisplayUnit: "rpm", Component: schema.ComponentNumberEdit},
			{Name: "spin_time", Type: schema.TypeFloat, Unit: "s", Component: schema.ComponentNumberEdit},
			{Name: "atmosphere", Type: schema.TypeEnum, Enum: atmosphereEnum(), Component: schema.ComponentRadioEnum},
			{Name: "comments", Type: schema.TypeString, Component: schema.ComponentRichTextEdit},
		},
	}
}

func annealingSection() schema.Section {
	return schema.Section{
		Name:     "Annealing",
		Label:    "Thermal annealing",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "substrate_batch", Type: schema.TypeRef, Target: "SubstrateBatch", Component: schema.ComponentReferenceEdit},
			{Name: "samples", Type: schema.TypeRef, Target: "Substrate", Repeats: true, Component: schema.ComponentReferenceEdit},
			{Name: "temperature", Type: schema.TypeFloat, Unit: "K", DisplayUnit: "degC", Component: schema.ComponentNumberEdit},
			{Name: "time", Type: schema.TypeFloat, Unit: "s", Component: schema.ComponentNumberEdit},
			{Name: "atmosphere", Type: schema.TypeEnum, Enum: atmosphereEnum(), Component: schema.ComponentRadioEnum},
			{Name: "comments", Type: schema.TypeString, Component: schema.ComponentRichTextEdit},
		},
	}
}

func experimentSection() schema.Section {
	return schema.Section{
		Name:     "Experiment",
		Label:    "OPV experiment",
		Category: Category,
		Quantities: []schema.Quantity{
			{Name: "name", Type: schema.TypeString, Component: schema.ComponentStringEdit},
			{Name: "objectives", Type: schema.TypeString, Default: domain.DefaultObjectivesText, Component: schema.ComponentRichTextEdit},
			{Name: "comments", Type: schema.TypeString, Default: domain.DefaultCommentsText, Component: schema.ComponentRichTextEdit},
			{Name: "conclusions", Type: schema.TypeString, Default: domain.DefaultConclusionsText, Component: schema.ComponentRichTextEdit},
			{Name: "measurements", Type: schema.TypeString, Default: domain.DefaultMeasurementsText, Component: schema.ComponentRichTextEdit},
			{Name: "substrate_batches", Type: schema.TypeRef, Target: "SubstrateBatch", Repeats: true, Component: schema.ComponentReferenceEdit},
			{Name: "solutions", Type: schema.TypeRef, Target: "Solution", Repeats: true, Component: schema.ComponentReferenceEdit},
			{Name: "fabrication_steps", Type: schema.TypeRef, Target: "FabricationStep", Repeats: true, Component: schema.ComponentReferenceEdit},
		},
	}
}
