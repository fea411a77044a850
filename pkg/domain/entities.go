// Package domain defines the persistent laboratory record types, value
// enumerations, and the save-time evaluation primitives (normalizers and
// rules) used by the forematics core.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityPureSubstance identifies a pure chemical substance record.
	EntityPureSubstance EntityType = "pure_substance"
	// EntitySubstrate identifies an individual solar-cell substrate record.
	EntitySubstrate EntityType = "substrate"
	// EntitySubstrateBatch identifies a substrate batch collection record.
	EntitySubstrateBatch EntityType = "substrate_batch"
	// EntitySolution identifies a solution preparation record.
	EntitySolution EntityType = "solution"
	// EntityCleaning identifies a substrate cleaning process record.
	EntityCleaning EntityType = "cleaning"
	// EntityBladeCoating identifies a blade coating process record.
	EntityBladeCoating EntityType = "blade_coating"
	// EntitySpinCoating identifies a spin coating process record.
	EntitySpinCoating EntityType = "spin_coating"
	// EntityAnnealing identifies a thermal annealing process record.
	EntityAnnealing EntityType = "annealing"
	// EntityExperiment identifies an aggregated OPV experiment record.
	EntityExperiment EntityType = "experiment"
)

// SubstrateSize represents the pre-defined substrate size categories stocked
// by the lab. Selecting one deterministically sets the physical dimensions.
type SubstrateSize string

// Substrate size categories.
const (
	SizeScaleUp     SubstrateSize = "Scale-up"
	SizeSpinCoating SubstrateSize = "Spin-coating"
)

// Atmosphere enumerates the fixed processing atmospheres.
type Atmosphere string

// Processing atmospheres.
const (
	AtmosphereGlovebox Atmosphere = "Glovebox"
	AtmosphereAir      Atmosphere = "Air"
	AtmosphereOther    Atmosphere = "Others"
)

// CleaningAgent enumerates the cleaning agents available in the lab.
type CleaningAgent string

// Cleaning agents.
const (
	AgentAcetone   CleaningAgent = "Acetone"
	AgentHellmanex CleaningAgent = "Hellmanex"
	AgentIPA       CleaningAgent = "IPA"
	AgentNaOH      CleaningAgent = "NaOH"
	AgentUVOzone   CleaningAgent = "UV-Ozone"
)

// CleaningProcedure selects between the fixed lab protocol and free-form steps.
type CleaningProcedure string

// Cleaning procedure modes.
const (
	ProcedureStandard CleaningProcedure = "Standard"
	ProcedureCustom   CleaningProcedure = "Custom"
)

// Schema-declared defaults shared between record construction and the
// section definitions registered by the plugin.
const (
	DefaultSupplier          = "Ossila"
	DefaultBatchLabID        = "NanoptoLab"
	DefaultTotalVolumeML     = 1.0
	DefaultSoluteConcMgPerML = 15.0
	DefaultObjectivesText    = "Describe the objectives of this OPV experiment..."
	DefaultCommentsText      = "General comments about this experiment..."
	DefaultConclusionsText   = "Add any conclusions about this experiment..."
	DefaultMeasurementsText  = "To be defined."
	DefaultCleaningDuration  = 60.0
	DefaultComponentRatio    = 1.0
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PureSubstance describes a pure chemical referenced by solution components.
type PureSubstance struct {
	Base
	Name             string   `json:"name"`
	IUPACName        *string  `json:"iupac_name,omitempty"`
	CASNumber        string   `json:"cas_number,omitempty"`
	MolecularFormula string   `json:"molecular_formula,omitempty"`
	DensityGPerML    *float64 `json:"density_g_per_ml,omitempty"`
}

// Substrate represents one solar-cell substrate. Dimensions are stored in
// millimetres; the schema declares metres with a millimetre display unit.
type Substrate struct {
	Base
	Name     string        `json:"name"`
	LabID    string        `json:"lab_id"`
	Supplier string        `json:"supplier"`
	Size     SubstrateSize `json:"size"`
	LengthMM float64       `json:"length_mm"`
	WidthMM  float64       `json:"width_mm"`
	DepthMM  float64       `json:"depth_mm"`
}

// SubstrateRef is a resolved reference to a substrate owned by a batch.
type SubstrateRef struct {
	SubstrateID string `json:"substrate_id"`
	Name        string `json:"name"`
	LabID       string `json:"lab_id"`
}

// SubstrateBatch owns and can (re)generate a collection of substrates.
// LabID doubles as the deterministic naming prefix for generated children.
type SubstrateBatch struct {
	Base
	Name               string         `json:"name"`
	Supplier           string         `json:"supplier"`
	Size               SubstrateSize  `json:"size"`
	LabID              string         `json:"lab_id"`
	NumberOfSubstrates int            `json:"number_of_substrates"`
	CreateSubstrates   bool           `json:"create_substrates"`
	Entities           []SubstrateRef `json:"entities"`
}

// SolventComponent is one solvent in a solution, dosed by relative ratio.
type SolventComponent struct {
	Name          string   `json:"name"`
	SolventRatio  float64  `json:"solvent_ratio"`
	DensityGPerML *float64 `json:"density_g_per_ml,omitempty"`
	SubstanceID   *string  `json:"substance_id,omitempty"`
	// VolumeML is populated by the solution calculation.
	VolumeML *float64 `json:"volume_ml,omitempty"`
}

// OrganicComponent is a donor or acceptor semiconductor dosed by ratio.
type OrganicComponent struct {
	Name          string   `json:"name"`
	Ratio         float64  `json:"ratio"`
	DensityGPerML *float64 `json:"density_g_per_ml,omitempty"`
	SubstanceID   *string  `json:"substance_id,omitempty"`
	// MassMG is populated by the solution calculation.
	MassMG *float64 `json:"mass_mg,omitempty"`
}

// AdditiveComponent is a processing additive dosed by volume percentage.
type AdditiveComponent struct {
	Name                string   `json:"name"`
	SolidConcGPerML     *float64 `json:"solid_concentration_g_per_ml,omitempty"`
	LiquidVolumePercent float64  `json:"liquid_volume_percent"`
	SubstanceID         *string  `json:"substance_id,omitempty"`
	// VolumeML is populated by the solution calculation.
	VolumeML *float64 `json:"volume_ml,omitempty"`
}

// Solution is a compilation of solvents, donors, acceptors, and additives
// with a target total volume and solute concentration.
type Solution struct {
	Base
	Name              string              `json:"name"`
	Solvents          []SolventComponent  `json:"solvents"`
	Donors            []OrganicComponent  `json:"donors"`
	Acceptors         []OrganicComponent  `json:"acceptors"`
	Additives         []AdditiveComponent `json:"additives"`
	TotalVolumeML     float64             `json:"total_volume_ml"`
	SoluteConcMgPerML float64             `json:"solute_concentration_mg_per_ml"`
	Calculate         bool                `json:"calculate_solution"`
	Report            string              `json:"report,omitempty"`
}

// CleaningStep is one agent bath within a cleaning process.
type CleaningStep struct {
	Agent      CleaningAgent `json:"cleaning_agent"`
	Sonication bool          `json:"sonication"`
	DurationS  float64       `json:"cleaning_time_s"`
}

// Cleaning records a substrate cleaning process applied to a batch.
type Cleaning struct {
	Base
	Name             string            `json:"name"`
	Supplier         string            `json:"supplier"`
	SubstrateBatchID *string           `json:"substrate_batch_id,omitempty"`
	SampleIDs        []string          `json:"sample_ids"`
	Procedure        CleaningProcedure `json:"procedure"`
	Steps            []CleaningStep    `json:"steps"`
}

// BladeCoating records a blade coating step used in device fabrication.
type BladeCoating struct {
	Base
	Name                  string     `json:"name"`
	SubstrateBatchID      *string    `json:"substrate_batch_id,omitempty"`
	SolutionID            *string    `json:"solution_id,omitempty"`
	SampleIDs             []string   `json:"sample_ids"`
	SubstrateTemperatureC *float64   `json:"substrate_temperature_c,omitempty"`
	BladeSpeedMMPerS      *float64   `json:"blade_speed_mm_per_s,omitempty"`
	BladeGapUM            *float64   `json:"blade_gap_um,omitempty"`
	Atmosphere            Atmosphere `json:"atmosphere,omitempty"`
	Comments              string     `json:"comments,omitempty"`
}

// SpinCoating records a spin coating step used in device fabrication.
type SpinCoating struct {
	Base
	Name                  string     `json:"name"`
	SubstrateBatchID      *string    `json:"substrate_batch_id,omitempty"`
	SolutionID            *string    `json:"solution_id,omitempty"`
	SampleIDs             []string   `json:"sample_ids"`
	SubstrateTemperatureC *float64   `json:"substrate_temperature_c,omitempty"`
	SpinSpeedRPM          *float64   `json:"spin_speed_rpm,omitempty"`
	SpinTimeS             *float64   `json:"spin_time_s,omitempty"`
	Atmosphere            Atmosphere `json:"atmosphere,omitempty"`
	Comments              string     `json:"comments,omitempty"`
}

// Annealing records a thermal annealing step.
type Annealing struct {
	Base
	Name             string     `json:"name"`
	SubstrateBatchID *string    `json:"substrate_batch_id,omitempty"`
	SampleIDs        []string   `json:"sample_ids"`
	TemperatureC     *float64   `json:"temperature_c,omitempty"`
	DurationS        *float64   `json:"time_s,omitempty"`
	Atmosphere       Atmosphere `json:"atmosphere,omitempty"`
	Comments         string     `json:"comments,omitempty"`
}

// StepRef points at a fabrication step record of a given type.
type StepRef struct {
	Entity EntityType `json:"entity"`
	ID     string     `json:"id"`
}

// Experiment aggregates substrate batches, solutions, and fabrication steps
// with free-text narrative fields.
type Experiment struct {
	Base
	Name              string    `json:"name"`
	Objectives        string    `json:"objectives"`
	Comments          string    `json:"comments"`
	Conclusions       string    `json:"conclusions"`
	Measurements      string    `json:"measurements"`
	SubstrateBatchIDs []string  `json:"substrate_batch_ids"`
	SolutionIDs       []string  `json:"solution_ids"`
	FabricationSteps  []StepRef `json:"fabrication_steps"`
}
