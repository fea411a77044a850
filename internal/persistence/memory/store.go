// Package memory provides the in-memory transactional store the persistent
// backends build on. Transactions run against a cloned state; save-time
// normalizers and rules are evaluated before the clone is committed.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// maxNormalizeDispatches bounds hook dispatch per transaction so a hook that
// keeps generating records cannot spin the commit loop forever.
const maxNormalizeDispatches = 1024

type memoryState struct {
	substances    map[string]domain.PureSubstance
	substrates    map[string]domain.Substrate
	batches       map[string]domain.SubstrateBatch
	solutions     map[string]domain.Solution
	cleanings     map[string]domain.Cleaning
	bladeCoatings map[string]domain.BladeCoating
	spinCoatings  map[string]domain.SpinCoating
	annealings    map[string]domain.Annealing
	experiments   map[string]domain.Experiment
}

func newMemoryState() memoryState {
	return memoryState{
		substances:    make(map[string]domain.PureSubstance),
		substrates:    make(map[string]domain.Substrate),
		batches:       make(map[string]domain.SubstrateBatch),
		solutions:     make(map[string]domain.Solution),
		cleanings:     make(map[string]domain.Cleaning),
		bladeCoatings: make(map[string]domain.BladeCoating),
		spinCoatings:  make(map[string]domain.SpinCoating),
		annealings:    make(map[string]domain.Annealing),
		experiments:   make(map[string]domain.Experiment),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.substances {
		cloned.substances[k] = cloneSubstance(v)
	}
	for k, v := range s.substrates {
		cloned.substrates[k] = cloneSubstrate(v)
	}
	for k, v := range s.batches {
		cloned.batches[k] = cloneBatch(v)
	}
	for k, v := range s.solutions {
		cloned.solutions[k] = cloneSolution(v)
	}
	for k, v := range s.cleanings {
		cloned.cleanings[k] = cloneCleaning(v)
	}
	for k, v := range s.bladeCoatings {
		cloned.bladeCoatings[k] = cloneBladeCoating(v)
	}
	for k, v := range s.spinCoatings {
		cloned.spinCoatings[k] = cloneSpinCoating(v)
	}
	for k, v := range s.annealings {
		cloned.annealings[k] = cloneAnnealing(v)
	}
	for k, v := range s.experiments {
		cloned.experiments[k] = cloneExperiment(v)
	}
	return cloned
}

func cloneSubstance(p domain.PureSubstance) domain.PureSubstance { return p }
func cloneSubstrate(s domain.Substrate) domain.Substrate         { return s }

func cloneBatch(b domain.SubstrateBatch) domain.SubstrateBatch {
	cp := b
	cp.Entities = append([]domain.SubstrateRef(nil), b.Entities...)
	return cp
}

func cloneSolution(s domain.Solution) domain.Solution {
	cp := s
	cp.Solvents = append([]domain.SolventComponent(nil), s.Solvents...)
	cp.Donors = append([]domain.OrganicComponent(nil), s.Donors...)
	cp.Acceptors = append([]domain.OrganicComponent(nil), s.Acceptors...)
	cp.Additives = append([]domain.AdditiveComponent(nil), s.Additives...)
	return cp
}

func cloneCleaning(c domain.Cleaning) domain.Cleaning {
	cp := c
	cp.SampleIDs = append([]string(nil), c.SampleIDs...)
	cp.Steps = append([]domain.CleaningStep(nil), c.Steps...)
	return cp
}

func cloneBladeCoating(b domain.BladeCoating) domain.BladeCoating {
	cp := b
	cp.SampleIDs = append([]string(nil), b.SampleIDs...)
	return cp
}

func cloneSpinCoating(s domain.SpinCoating) domain.SpinCoating {
	cp := s
	cp.SampleIDs = append([]string(nil), s.SampleIDs...)
	return cp
}

func cloneAnnealing(a domain.Annealing) domain.Annealing {
	cp := a
	cp.SampleIDs = append([]string(nil), a.SampleIDs...)
	return cp
}

func cloneExperiment(e domain.Experiment) domain.Experiment {
	cp := e
	cp.SubstrateBatchIDs = append([]string(nil), e.SubstrateBatchIDs...)
	cp.SolutionIDs = append([]string(nil), e.SolutionIDs...)
	cp.FabricationSteps = append([]domain.StepRef(nil), e.FabricationSteps...)
	return cp
}

// Snapshot is the serializable representation of the full store state used
// by the durable backends. Buckets are sorted by record ID for determinism.
type Snapshot struct {
	PureSubstances []domain.PureSubstance  `json:"pure_substances"`
	Substrates     []domain.Substrate      `json:"substrates"`
	Batches        []domain.SubstrateBatch `json:"substrate_batches"`
	Solutions      []domain.Solution       `json:"solutions"`
	Cleanings      []domain.Cleaning       `json:"cleanings"`
	BladeCoatings  []domain.BladeCoating   `json:"blade_coatings"`
	SpinCoatings   []domain.SpinCoating    `json:"spin_coatings"`
	Annealings     []domain.Annealing      `json:"annealings"`
	Experiments    []domain.Experiment     `json:"experiments"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	var snap Snapshot
	for _, v := range state.substances {
		snap.PureSubstances = append(snap.PureSubstances, cloneSubstance(v))
	}
	for _, v := range state.substrates {
		snap.Substrates = append(snap.Substrates, cloneSubstrate(v))
	}
	for _, v := range state.batches {
		snap.Batches = append(snap.Batches, cloneBatch(v))
	}
	for _, v := range state.solutions {
		snap.Solutions = append(snap.Solutions, cloneSolution(v))
	}
	for _, v := range state.cleanings {
		snap.Cleanings = append(snap.Cleanings, cloneCleaning(v))
	}
	for _, v := range state.bladeCoatings {
		snap.BladeCoatings = append(snap.BladeCoatings, cloneBladeCoating(v))
	}
	for _, v := range state.spinCoatings {
		snap.SpinCoatings = append(snap.SpinCoatings, cloneSpinCoating(v))
	}
	for _, v := range state.annealings {
		snap.Annealings = append(snap.Annealings, cloneAnnealing(v))
	}
	for _, v := range state.experiments {
		snap.Experiments = append(snap.Experiments, cloneExperiment(v))
	}
	sort.Slice(snap.PureSubstances, func(i, j int) bool { return snap.PureSubstances[i].ID < snap.PureSubstances[j].ID })
	sort.Slice(snap.Substrates, func(i, j int) bool { return snap.Substrates[i].ID < snap.Substrates[j].ID })
	sort.Slice(snap.Batches, func(i, j int) bool { return snap.Batches[i].ID < snap.Batches[j].ID })
	sort.Slice(snap.Solutions, func(i, j int) bool { return snap.Solutions[i].ID < snap.Solutions[j].ID })
	sort.Slice(snap.Cleanings, func(i, j int) bool { return snap.Cleanings[i].ID < snap.Cleanings[j].ID })
	sort.Slice(snap.BladeCoatings, func(i, j int) bool { return snap.BladeCoatings[i].ID < snap.BladeCoatings[j].ID })
	sort.Slice(snap.SpinCoatings, func(i, j int) bool { return snap.SpinCoatings[i].ID < snap.SpinCoatings[j].ID })
	sort.Slice(snap.Annealings, func(i, j int) bool { return snap.Annealings[i].ID < snap.Annealings[j].ID })
	sort.Slice(snap.Experiments, func(i, j int) bool { return snap.Experiments[i].ID < snap.Experiments[j].ID })
	return snap
}

func memoryStateFromSnapshot(snap Snapshot) memoryState {
	state := newMemoryState()
	for _, v := range snap.PureSubstances {
		state.substances[v.ID] = cloneSubstance(v)
	}
	for _, v := range snap.Substrates {
		state.substrates[v.ID] = cloneSubstrate(v)
	}
	for _, v := range snap.Batches {
		state.batches[v.ID] = cloneBatch(v)
	}
	for _, v := range snap.Solutions {
		state.solutions[v.ID] = cloneSolution(v)
	}
	for _, v := range snap.Cleanings {
		state.cleanings[v.ID] = cloneCleaning(v)
	}
	for _, v := range snap.BladeCoatings {
		state.bladeCoatings[v.ID] = cloneBladeCoating(v)
	}
	for _, v := range snap.SpinCoatings {
		state.spinCoatings[v.ID] = cloneSpinCoating(v)
	}
	for _, v := range snap.Annealings {
		state.annealings[v.ID] = cloneAnnealing(v)
	}
	for _, v := range snap.Experiments {
		state.experiments[v.ID] = cloneExperiment(v)
	}
	return state
}

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu          sync.RWMutex
	state       memoryState
	rules       *domain.RulesEngine
	normalizers *domain.NormalizerEngine
	archive     domain.ArchiveWriter
	logger      domain.Logger
	nowFn       func() time.Time
}

// NewStore constructs an in-memory store backed by the provided engines.
// Either engine may be nil, in which case that phase is skipped.
func NewStore(rules *domain.RulesEngine, normalizers *domain.NormalizerEngine) *Store {
	return &Store{
		state:       newMemoryState(),
		rules:       rules,
		normalizers: normalizers,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// SetArchiveWriter wires the archive backend used by normalize hooks that
// materialize child entries.
func (s *Store) SetArchiveWriter(w domain.ArchiveWriter) { s.archive = w }

// SetLogger wires the logger handed to normalize hooks.
func (s *Store) SetLogger(l domain.Logger) { s.logger = l }

// SetNowFunc overrides the transaction clock, primarily for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

// RulesEngine returns the rules engine used at commit time.
func (s *Store) RulesEngine() *domain.RulesEngine { return s.rules }

// NormalizerEngine returns the normalizer engine run before rule evaluation.
func (s *Store) NormalizerEngine() *domain.NormalizerEngine { return s.normalizers }

// ExportState returns a deep snapshot of the committed state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the committed state with the snapshot contents.
func (s *Store) ImportState(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snap)
}

func (s *Store) newID() string { return uuid.NewString() }

// transaction represents a mutation set applied to the store state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []domain.Change
	now     time.Time
}

var _ domain.Transaction = (*transaction)(nil)

// RunInTransaction executes fn within a transactional copy of the store
// state, runs normalize hooks over the produced changes, evaluates rules,
// and commits unless a blocking violation or error occurred.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}

	if err := s.normalize(ctx, tx); err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	if s.rules != nil {
		view := newTransactionView(&tx.state)
		res, err := s.rules.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// normalize walks the change queue, dispatching hooks per entity. Hooks may
// create further records; their changes are appended to the queue and
// normalized in turn, bounded by maxNormalizeDispatches.
func (s *Store) normalize(ctx context.Context, tx *transaction) error {
	if s.normalizers == nil {
		return nil
	}
	nctx := domain.NormalizeContext{
		Tx:      tx,
		Archive: s.archive,
		Logger:  s.logger,
		Now:     tx.now,
	}
	for i := 0; i < len(tx.changes); i++ {
		if i >= maxNormalizeDispatches {
			return fmt.Errorf("normalize dispatch limit (%d) exceeded", maxNormalizeDispatches)
		}
		change := tx.changes[i]
		if change.Action == domain.ActionDelete {
			continue
		}
		normalized, ran, err := s.normalizers.Normalize(ctx, nctx, change.Entity, change.After)
		if err != nil {
			return err
		}
		if !ran {
			continue
		}
		if err := tx.writeNormalized(change.Entity, normalized); err != nil {
			return err
		}
		tx.changes[i].After = normalized
	}
	return nil
}

// writeNormalized stores a hook-mutated record back into the transaction
// state without emitting a fresh change entry.
func (tx *transaction) writeNormalized(entity domain.EntityType, record any) error {
	switch entity {
	case domain.EntityPureSubstance:
		r := record.(domain.PureSubstance)
		tx.state.substances[r.ID] = cloneSubstance(r)
	case domain.EntitySubstrate:
		r := record.(domain.Substrate)
		tx.state.substrates[r.ID] = cloneSubstrate(r)
	case domain.EntitySubstrateBatch:
		r := record.(domain.SubstrateBatch)
		tx.state.batches[r.ID] = cloneBatch(r)
	case domain.EntitySolution:
		r := record.(domain.Solution)
		tx.state.solutions[r.ID] = cloneSolution(r)
	case domain.EntityCleaning:
		r := record.(domain.Cleaning)
		tx.state.cleanings[r.ID] = cloneCleaning(r)
	case domain.EntityBladeCoating:
		r := record.(domain.BladeCoating)
		tx.state.bladeCoatings[r.ID] = cloneBladeCoating(r)
	case domain.EntitySpinCoating:
		r := record.(domain.SpinCoating)
		tx.state.spinCoatings[r.ID] = cloneSpinCoating(r)
	case domain.EntityAnnealing:
		r := record.(domain.Annealing)
		tx.state.annealings[r.ID] = cloneAnnealing(r)
	case domain.EntityExperiment:
		r := record.(domain.Experiment)
		tx.state.experiments[r.ID] = cloneExperiment(r)
	default:
		return fmt.Errorf("unknown entity type %q", entity)
	}
	return nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(ctx context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change domain.Change) {
	tx.changes = append(tx.changes, change)
}
