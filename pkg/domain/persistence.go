package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	CreatePureSubstance(PureSubstance) (PureSubstance, error)
	UpdatePureSubstance(id string, mutator func(*PureSubstance) error) (PureSubstance, error)
	DeletePureSubstance(id string) error
	CreateSubstrate(Substrate) (Substrate, error)
	UpdateSubstrate(id string, mutator func(*Substrate) error) (Substrate, error)
	DeleteSubstrate(id string) error
	CreateSubstrateBatch(SubstrateBatch) (SubstrateBatch, error)
	UpdateSubstrateBatch(id string, mutator func(*SubstrateBatch) error) (SubstrateBatch, error)
	DeleteSubstrateBatch(id string) error
	CreateSolution(Solution) (Solution, error)
	UpdateSolution(id string, mutator func(*Solution) error) (Solution, error)
	DeleteSolution(id string) error
	CreateCleaning(Cleaning) (Cleaning, error)
	UpdateCleaning(id string, mutator func(*Cleaning) error) (Cleaning, error)
	DeleteCleaning(id string) error
	CreateBladeCoating(BladeCoating) (BladeCoating, error)
	UpdateBladeCoating(id string, mutator func(*BladeCoating) error) (BladeCoating, error)
	DeleteBladeCoating(id string) error
	CreateSpinCoating(SpinCoating) (SpinCoating, error)
	UpdateSpinCoating(id string, mutator func(*SpinCoating) error) (SpinCoating, error)
	DeleteSpinCoating(id string) error
	CreateAnnealing(Annealing) (Annealing, error)
	UpdateAnnealing(id string, mutator func(*Annealing) error) (Annealing, error)
	DeleteAnnealing(id string) error
	CreateExperiment(Experiment) (Experiment, error)
	UpdateExperiment(id string, mutator func(*Experiment) error) (Experiment, error)
	DeleteExperiment(id string) error
	FindPureSubstance(id string) (PureSubstance, bool)
	FindSubstrate(id string) (Substrate, bool)
	FindSubstrateBatch(id string) (SubstrateBatch, bool)
	FindSolution(id string) (Solution, bool)
	HasSubstrate(id string) bool
}

// TransactionView provides read-only access to snapshot data for rules and
// reference-usage queries.
type TransactionView interface {
	RuleView
	ListPureSubstances() []PureSubstance
	ListBladeCoatings() []BladeCoating
	ListSpinCoatings() []SpinCoating
	ListAnnealings() []Annealing
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetPureSubstance(id string) (PureSubstance, bool)
	GetSubstrate(id string) (Substrate, bool)
	GetSubstrateBatch(id string) (SubstrateBatch, bool)
	GetSolution(id string) (Solution, bool)
	GetCleaning(id string) (Cleaning, bool)
	GetBladeCoating(id string) (BladeCoating, bool)
	GetSpinCoating(id string) (SpinCoating, bool)
	GetAnnealing(id string) (Annealing, bool)
	GetExperiment(id string) (Experiment, bool)
	ListPureSubstances() []PureSubstance
	ListSubstrates() []Substrate
	ListSubstrateBatches() []SubstrateBatch
	ListSolutions() []Solution
	ListCleanings() []Cleaning
	ListBladeCoatings() []BladeCoating
	ListSpinCoatings() []SpinCoating
	ListAnnealings() []Annealing
	ListExperiments() []Experiment
}
