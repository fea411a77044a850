// Package refindex provides an in-process reference-usage index. Hosted
// deployments inject the platform's own search service instead; this index
// serves tests and standalone runs by scanning the store's reference fields.
package refindex

import (
	"context"
	"sync"

	"github.com/mcasademont9/nomad-forematics/internal/core"
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

var _ core.SearchIndex = (*Index)(nil)

// Index maps referenced record IDs to the records holding the reference,
// bucketed by the referencing record's entity type.
type Index struct {
	mu sync.RWMutex
	// refs[entity][referencedID] -> set of referencing record IDs
	refs map[domain.EntityType]map[string]map[string]struct{}
}

// New constructs an empty index.
func New() *Index {
	return &Index{refs: make(map[domain.EntityType]map[string]map[string]struct{})}
}

// Add records that record recordID of the given entity type references
// referencedID.
func (x *Index) Add(entity domain.EntityType, recordID, referencedID string) {
	if recordID == "" || referencedID == "" {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	byRef, ok := x.refs[entity]
	if !ok {
		byRef = make(map[string]map[string]struct{})
		x.refs[entity] = byRef
	}
	set, ok := byRef[referencedID]
	if !ok {
		set = make(map[string]struct{})
		byRef[referencedID] = set
	}
	set[recordID] = struct{}{}
}

// Search implements core.SearchIndex.
func (x *Index) Search(_ context.Context, q core.SearchQuery) (core.SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var result core.SearchResult
	for _, entity := range q.EntityTypes {
		for recordID := range x.refs[entity][q.ReferencesID] {
			result.Total++
			if q.PageSize <= 0 || len(result.Hits) < q.PageSize {
				result.Hits = append(result.Hits, core.SearchHit{Entity: entity, ID: recordID})
			}
		}
	}
	return result, nil
}

// Rebuild clears the index and rescans every reference-carrying field in the
// store's committed state.
func (x *Index) Rebuild(store domain.PersistentStore) {
	x.mu.Lock()
	x.refs = make(map[domain.EntityType]map[string]map[string]struct{})
	x.mu.Unlock()

	for _, batch := range store.ListSubstrateBatches() {
		for _, ref := range batch.Entities {
			x.Add(domain.EntitySubstrateBatch, batch.ID, ref.SubstrateID)
		}
	}
	for _, sol := range store.ListSolutions() {
		for _, c := range sol.Solvents {
			if c.SubstanceID != nil {
				x.Add(domain.EntitySolution, sol.ID, *c.SubstanceID)
			}
		}
		for _, c := range sol.Donors {
			if c.SubstanceID != nil {
				x.Add(domain.EntitySolution, sol.ID, *c.SubstanceID)
			}
		}
		for _, c := range sol.Acceptors {
			if c.SubstanceID != nil {
				x.Add(domain.EntitySolution, sol.ID, *c.SubstanceID)
			}
		}
		for _, c := range sol.Additives {
			if c.SubstanceID != nil {
				x.Add(domain.EntitySolution, sol.ID, *c.SubstanceID)
			}
		}
	}
	for _, c := range store.ListCleanings() {
		if c.SubstrateBatchID != nil {
			x.Add(domain.EntityCleaning, c.ID, *c.SubstrateBatchID)
		}
		for _, sample := range c.SampleIDs {
			x.Add(domain.EntityCleaning, c.ID, sample)
		}
	}
	for _, b := range store.ListBladeCoatings() {
		if b.SubstrateBatchID != nil {
			x.Add(domain.EntityBladeCoating, b.ID, *b.SubstrateBatchID)
		}
		if b.SolutionID != nil {
			x.Add(domain.EntityBladeCoating, b.ID, *b.SolutionID)
		}
		for _, sample := range b.SampleIDs {
			x.Add(domain.EntityBladeCoating, b.ID, sample)
		}
	}
	for _, s := range store.ListSpinCoatings() {
		if s.SubstrateBatchID != nil {
			x.Add(domain.EntitySpinCoating, s.ID, *s.SubstrateBatchID)
		}
		if s.SolutionID != nil {
			x.Add(domain.EntitySpinCoating, s.ID, *s.SolutionID)
		}
		for _, sample := range s.SampleIDs {
			x.Add(domain.EntitySpinCoating, s.ID, sample)
		}
	}
	for _, a := range store.ListAnnealings() {
		if a.SubstrateBatchID != nil {
			x.Add(domain.EntityAnnealing, a.ID, *a.SubstrateBatchID)
		}
		for _, sample := range a.SampleIDs {
			x.Add(domain.EntityAnnealing, a.ID, sample)
		}
	}
	for _, e := range store.ListExperiments() {
		for _, id := range e.SubstrateBatchIDs {
			x.Add(domain.EntityExperiment, e.ID, id)
		}
		for _, id := range e.SolutionIDs {
			x.Add(domain.EntityExperiment, e.ID, id)
		}
		for _, step := range e.FabricationSteps {
			x.Add(domain.EntityExperiment, e.ID, step.ID)
		}
	}
}
