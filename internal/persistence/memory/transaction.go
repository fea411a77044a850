package memory

import (
	"fmt"
	"sort"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

func (tx *transaction) CreatePureSubstance(p domain.PureSubstance) (domain.PureSubstance, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.substances[p.ID]; exists {
		return domain.PureSubstance{}, fmt.Errorf("pure substance %s already exists", p.ID)
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.substances[p.ID] = cloneSubstance(p)
	tx.recordChange(domain.Change{Entity: domain.EntityPureSubstance, Action: domain.ActionCreate, After: cloneSubstance(p)})
	return cloneSubstance(p), nil
}

func (tx *transaction) UpdatePureSubstance(id string, mutator func(*domain.PureSubstance) error) (domain.PureSubstance, error) {
	current, ok := tx.state.substances[id]
	if !ok {
		return domain.PureSubstance{}, fmt.Errorf("pure substance %s not found", id)
	}
	before := cloneSubstance(current)
	updated := cloneSubstance(current)
	if err := mutator(&updated); err != nil {
		return domain.PureSubstance{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.substances[id] = cloneSubstance(updated)
	tx.recordChange(domain.Change{Entity: domain.EntityPureSubstance, Action: domain.ActionUpdate, Before: before, After: cloneSubstance(updated)})
	return cloneSubstance(updated), nil
}

func (tx *transaction) DeletePureSubstance(id string) error {
	current, ok := tx.state.substances[id]
	if !ok {
		return fmt.Errorf("pure substance %s not found", id)
	}
	delete(tx.state.substances, id)
	tx.recordChange(domain.Change{Entity: domain.EntityPureSubstance, Action: domain.ActionDelete, Before: cloneSubstance(current)})
	return nil
}

func (tx *transaction) CreateSubstrate(s domain.Substrate) (domain.Substrate, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.substrates[s.ID]; exists {
		return domain.Substrate{}, fmt.Errorf("substrate %s already exists", s.ID)
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.substrates[s.ID] = cloneSubstrate(s)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrate, Action: domain.ActionCreate, After: cloneSubstrate(s)})
	return cloneSubstrate(s), nil
}

func (tx *transaction) UpdateSubstrate(id string, mutator func(*domain.Substrate) error) (domain.Substrate, error) {
	current, ok := tx.state.substrates[id]
	if !ok {
		return domain.Substrate{}, fmt.Errorf("substrate %s not found", id)
	}
	before := cloneSubstrate(current)
	updated := cloneSubstrate(current)
	if err := mutator(&updated); err != nil {
		return domain.Substrate{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.substrates[id] = cloneSubstrate(updated)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrate, Action: domain.ActionUpdate, Before: before, After: cloneSubstrate(updated)})
	return cloneSubstrate(updated), nil
}

func (tx *transaction) DeleteSubstrate(id string) error {
	current, ok := tx.state.substrates[id]
	if !ok {
		return fmt.Errorf("substrate %s not found", id)
	}
	delete(tx.state.substrates, id)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrate, Action: domain.ActionDelete, Before: cloneSubstrate(current)})
	return nil
}

func (tx *transaction) CreateSubstrateBatch(b domain.SubstrateBatch) (domain.SubstrateBatch, error) {
	if b.ID == "" {
		b.ID = tx.store.newID()
	}
	if _, exists := tx.state.batches[b.ID]; exists {
		return domain.SubstrateBatch{}, fmt.Errorf("substrate batch %s already exists", b.ID)
	}
	b.CreatedAt = tx.now
	b.UpdatedAt = tx.now
	tx.state.batches[b.ID] = cloneBatch(b)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrateBatch, Action: domain.ActionCreate, After: cloneBatch(b)})
	return cloneBatch(b), nil
}

func (tx *transaction) UpdateSubstrateBatch(id string, mutator func(*domain.SubstrateBatch) error) (domain.SubstrateBatch, error) {
	current, ok := tx.state.batches[id]
	if !ok {
		return domain.SubstrateBatch{}, fmt.Errorf("substrate batch %s not found", id)
	}
	before := cloneBatch(current)
	updated := cloneBatch(current)
	if err := mutator(&updated); err != nil {
		return domain.SubstrateBatch{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.batches[id] = cloneBatch(updated)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrateBatch, Action: domain.ActionUpdate, Before: before, After: cloneBatch(updated)})
	return cloneBatch(updated), nil
}

func (tx *transaction) DeleteSubstrateBatch(id string) error {
	current, ok := tx.state.batches[id]
	if !ok {
		return fmt.Errorf("substrate batch %s not found", id)
	}
	delete(tx.state.batches, id)
	tx.recordChange(domain.Change{Entity: domain.EntitySubstrateBatch, Action: domain.ActionDelete, Before: cloneBatch(current)})
	return nil
}

func (tx *transaction) CreateSolution(sol domain.Solution) (domain.Solution, error) {
	if sol.ID == "" {
		sol.ID = tx.store.newID()
	}
	if _, exists := tx.state.solutions[sol.ID]; exists {
		return domain.Solution{}, fmt.Errorf("solution %s already exists", sol.ID)
	}
	sol.CreatedAt = tx.now
	sol.UpdatedAt = tx.now
	tx.state.solutions[sol.ID] = cloneSolution(sol)
	tx.recordChange(domain.Change{Entity: domain.EntitySolution, Action: domain.ActionCreate, After: cloneSolution(sol)})
	return cloneSolution(sol), nil
}

func (tx *transaction) UpdateSolution(id string, mutator func(*domain.Solution) error) (domain.Solution, error) {
	current, ok := tx.state.solutions[id]
	if !ok {
		return domain.Solution{}, fmt.Errorf("solution %s not found", id)
	}
	before := cloneSolution(current)
	updated := cloneSolution(current)
	if err := mutator(&updated); err != nil {
		return domain.Solution{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.solutions[id] = cloneSolution(updated)
	tx.recordChange(domain.Change{Entity: domain.EntitySolution, Action: domain.ActionUpdate, Before: before, After: cloneSolution(updated)})
	return cloneSolution(updated), nil
}

func (tx *transaction) DeleteSolution(id string) error {
	current, ok := tx.state.solutions[id]
	if !ok {
		return fmt.Errorf("solution %s not found", id)
	}
	delete(tx.state.solutions, id)
	tx.recordChange(domain.Change{Entity: domain.EntitySolution, Action: domain.ActionDelete, Before: cloneSolution(current)})
	return nil
}

func (tx *transaction) CreateCleaning(c domain.Cleaning) (domain.Cleaning, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.cleanings[c.ID]; exists {
		return domain.Cleaning{}, fmt.Errorf("cleaning %s already exists", c.ID)
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.cleanings[c.ID] = cloneCleaning(c)
	tx.recordChange(domain.Change{Entity: domain.EntityCleaning, Action: domain.ActionCreate, After: cloneCleaning(c)})
	return cloneCleaning(c), nil
}

func (tx *transaction) UpdateCleaning(id string, mutator func(*domain.Cleaning) error) (domain.Cleaning, error) {
	current, ok := tx.state.cleanings[id]
	if !ok {
		return domain.Cleaning{}, fmt.Errorf("cleaning %s not found", id)
	}
	before := cloneCleaning(current)
	updated := cloneCleaning(current)
	if err := mutator(&updated); err != nil {
		return domain.Cleaning{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.cleanings[id] = cloneCleaning(updated)
	tx.recordChange(domain.Change{Entity: domain.EntityCleaning, Action: domain.ActionUpdate, Before: before, After: cloneCleaning(updated)})
	return cloneCleaning(updated), nil
}

func (tx *transaction) DeleteCleaning(id string) error {
	current, ok := tx.state.cleanings[id]
	if !ok {
		return fmt.Errorf("cleaning %s not found", id)
	}
	delete(tx.state.cleanings, id)
	tx.recordChange(domain.Change{Entity: domain.EntityCleaning, Action: domain.ActionDelete, Before: cloneCleaning(current)})
	return nil
}

func (tx *transaction) CreateBladeCoating(b domain.BladeCoating) (domain.BladeCoating, error) {
	if b.ID == "" {
		b.ID = tx.store.newID()
	}
	if _, exists := tx.state.bladeCoatings[b.ID]; exists {
		return domain.BladeCoating{}, fmt.Errorf("blade coating %s already exists", b.ID)
	}
	b.CreatedAt = tx.now
	b.UpdatedAt = tx.now
	tx.state.bladeCoatings[b.ID] = cloneBladeCoating(b)
	tx.recordChange(domain.Change{Entity: domain.EntityBladeCoating, Action: domain.ActionCreate, After: cloneBladeCoating(b)})
	return cloneBladeCoating(b), nil
}

func (tx *transaction) UpdateBladeCoating(id string, mutator func(*domain.BladeCoating) error) (domain.BladeCoating, error) {
	current, ok := tx.state.bladeCoatings[id]
	if !ok {
		return domain.BladeCoating{}, fmt.Errorf("blade coating %s not found", id)
	}
	before := cloneBladeCoating(current)
	updated := cloneBladeCoating(current)
	if err := mutator(&updated); err != nil {
		return domain.BladeCoating{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.bladeCoatings[id] = cloneBladeCoating(updated)
	tx.recordChange(domain.Change{Entity: domain.EntityBladeCoating, Action: domain.ActionUpdate, Before: before, After: cloneBladeCoating(updated)})
	return cloneBladeCoating(updated), nil
}

func (tx *transaction) DeleteBladeCoating(id string) error {
	current, ok := tx.state.bladeCoatings[id]
	if !ok {
		return fmt.Errorf("blade coating %s not found", id)
	}
	delete(tx.state.bladeCoatings, id)
	tx.recordChange(domain.Change{Entity: domain.EntityBladeCoating, Action: domain.ActionDelete, Before: cloneBladeCoating(current)})
	return nil
}

func (tx *transaction) CreateSpinCoating(s domain.SpinCoating) (domain.SpinCoating, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.spinCoatings[s.ID]; exists {
		return domain.SpinCoating{}, fmt.Errorf("spin coating %s already exists", s.ID)
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.spinCoatings[s.ID] = cloneSpinCoating(s)
	tx.recordChange(domain.Change{Entity: domain.EntitySpinCoating, Action: domain.ActionCreate, After: cloneSpinCoating(s)})
	return cloneSpinCoating(s), nil
}

func (tx *transaction) UpdateSpinCoating(id string, mutator func(*domain.SpinCoating) error) (domain.SpinCoating, error) {
	current, ok := tx.state.spinCoatings[id]
	if !ok {
		return domain.SpinCoating{}, fmt.Errorf("spin coating %s not found", id)
	}
	before := cloneSpinCoating(current)
	updated := cloneSpinCoating(current)
	if err := mutator(&updated); err != nil {
		return domain.SpinCoating{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.spinCoatings[id] = cloneSpinCoating(updated)
	tx.recordChange(domain.Change{Entity: domain.EntitySpinCoating, Action: domain.ActionUpdate, Before: before, After: cloneSpinCoating(updated)})
	return cloneSpinCoating(updated), nil
}

func (tx *transaction) DeleteSpinCoating(id string) error {
	current, ok := tx.state.spinCoatings[id]
	if !ok {
		return fmt.Errorf("spin coating %s not found", id)
	}
	delete(tx.state.spinCoatings, id)
	tx.recordChange(domain.Change{Entity: domain.EntitySpinCoating, Action: domain.ActionDelete, Before: cloneSpinCoating(current)})
	return nil
}

func (tx *transaction) CreateAnnealing(a domain.Annealing) (domain.Annealing, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.annealings[a.ID]; exists {
		return domain.Annealing{}, fmt.Errorf("annealing %s already exists", a.ID)
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.annealings[a.ID] = cloneAnnealing(a)
	tx.recordChange(domain.Change{Entity: domain.EntityAnnealing, Action: domain.ActionCreate, After: cloneAnnealing(a)})
	return cloneAnnealing(a), nil
}

func (tx *transaction) UpdateAnnealing(id string, mutator func(*domain.Annealing) error) (domain.Annealing, error) {
	current, ok := tx.state.annealings[id]
	if !ok {
		return domain.Annealing{}, fmt.Errorf("annealing %s not found", id)
	}
	before := cloneAnnealing(current)
	updated := cloneAnnealing(current)
	if err := mutator(&updated); err != nil {
		return domain.Annealing{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.annealings[id] = cloneAnnealing(updated)
	tx.recordChange(domain.Change{Entity: domain.EntityAnnealing, Action: domain.ActionUpdate, Before: before, After: cloneAnnealing(updated)})
	return cloneAnnealing(updated), nil
}

func (tx *transaction) DeleteAnnealing(id string) error {
	current, ok := tx.state.annealings[id]
	if !ok {
		return fmt.Errorf("annealing %s not found", id)
	}
	delete(tx.state.annealings, id)
	tx.recordChange(domain.Change{Entity: domain.EntityAnnealing, Action: domain.ActionDelete, Before: cloneAnnealing(current)})
	return nil
}

func (tx *transaction) CreateExperiment(e domain.Experiment) (domain.Experiment, error) {
	if e.ID == "" {
		e.ID = tx.store.newID()
	}
	if _, exists := tx.state.experiments[e.ID]; exists {
		return domain.Experiment{}, fmt.Errorf("experiment %s already exists", e.ID)
	}
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.experiments[e.ID] = cloneExperiment(e)
	tx.recordChange(domain.Change{Entity: domain.EntityExperiment, Action: domain.ActionCreate, After: cloneExperiment(e)})
	return cloneExperiment(e), nil
}

func (tx *transaction) UpdateExperiment(id string, mutator func(*domain.Experiment) error) (domain.Experiment, error) {
	current, ok := tx.state.experiments[id]
	if !ok {
		return domain.Experiment{}, fmt.Errorf("experiment %s not found", id)
	}
	before := cloneExperiment(current)
	updated := cloneExperiment(current)
	if err := mutator(&updated); err != nil {
		return domain.Experiment{}, err
	}
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = tx.now
	tx.state.experiments[id] = cloneExperiment(updated)
	tx.recordChange(domain.Change{Entity: domain.EntityExperiment, Action: domain.ActionUpdate, Before: before, After: cloneExperiment(updated)})
	return cloneExperiment(updated), nil
}

func (tx *transaction) DeleteExperiment(id string) error {
	current, ok := tx.state.experiments[id]
	if !ok {
		return fmt.Errorf("experiment %s not found", id)
	}
	delete(tx.state.experiments, id)
	tx.recordChange(domain.Change{Entity: domain.EntityExperiment, Action: domain.ActionDelete, Before: cloneExperiment(current)})
	return nil
}

func (tx *transaction) FindPureSubstance(id string) (domain.PureSubstance, bool) {
	p, ok := tx.state.substances[id]
	if !ok {
		return domain.PureSubstance{}, false
	}
	return cloneSubstance(p), true
}

func (tx *transaction) FindSubstrate(id string) (domain.Substrate, bool) {
	s, ok := tx.state.substrates[id]
	if !ok {
		return domain.Substrate{}, false
	}
	return cloneSubstrate(s), true
}

func (tx *transaction) FindSubstrateBatch(id string) (domain.SubstrateBatch, bool) {
	b, ok := tx.state.batches[id]
	if !ok {
		return domain.SubstrateBatch{}, false
	}
	return cloneBatch(b), true
}

func (tx *transaction) FindSolution(id string) (domain.Solution, bool) {
	s, ok := tx.state.solutions[id]
	if !ok {
		return domain.Solution{}, false
	}
	return cloneSolution(s), true
}

func (tx *transaction) HasSubstrate(id string) bool {
	_, ok := tx.state.substrates[id]
	return ok
}

// transactionView adapts a state snapshot to the read-only view consumed by
// rules and reference-usage queries.
type transactionView struct {
	state *memoryState
}

var _ domain.TransactionView = (*transactionView)(nil)

func newTransactionView(state *memoryState) *transactionView {
	return &transactionView{state: state}
}

func (v *transactionView) ListPureSubstances() []domain.PureSubstance {
	out := make([]domain.PureSubstance, 0, len(v.state.substances))
	for _, p := range v.state.substances {
		out = append(out, cloneSubstance(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListSubstrates() []domain.Substrate {
	out := make([]domain.Substrate, 0, len(v.state.substrates))
	for _, s := range v.state.substrates {
		out = append(out, cloneSubstrate(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListSubstrateBatches() []domain.SubstrateBatch {
	out := make([]domain.SubstrateBatch, 0, len(v.state.batches))
	for _, b := range v.state.batches {
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListSolutions() []domain.Solution {
	out := make([]domain.Solution, 0, len(v.state.solutions))
	for _, s := range v.state.solutions {
		out = append(out, cloneSolution(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListCleanings() []domain.Cleaning {
	out := make([]domain.Cleaning, 0, len(v.state.cleanings))
	for _, c := range v.state.cleanings {
		out = append(out, cloneCleaning(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListBladeCoatings() []domain.BladeCoating {
	out := make([]domain.BladeCoating, 0, len(v.state.bladeCoatings))
	for _, b := range v.state.bladeCoatings {
		out = append(out, cloneBladeCoating(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListSpinCoatings() []domain.SpinCoating {
	out := make([]domain.SpinCoating, 0, len(v.state.spinCoatings))
	for _, s := range v.state.spinCoatings {
		out = append(out, cloneSpinCoating(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListAnnealings() []domain.Annealing {
	out := make([]domain.Annealing, 0, len(v.state.annealings))
	for _, a := range v.state.annealings {
		out = append(out, cloneAnnealing(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) ListExperiments() []domain.Experiment {
	out := make([]domain.Experiment, 0, len(v.state.experiments))
	for _, e := range v.state.experiments {
		out = append(out, cloneExperiment(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *transactionView) FindPureSubstance(id string) (domain.PureSubstance, bool) {
	p, ok := v.state.substances[id]
	if !ok {
		return domain.PureSubstance{}, false
	}
	return cloneSubstance(p), true
}

func (v *transactionView) FindSubstrate(id string) (domain.Substrate, bool) {
	s, ok := v.state.substrates[id]
	if !ok {
		return domain.Substrate{}, false
	}
	return cloneSubstrate(s), true
}

func (v *transactionView) FindSubstrateBatch(id string) (domain.SubstrateBatch, bool) {
	b, ok := v.state.batches[id]
	if !ok {
		return domain.SubstrateBatch{}, false
	}
	return cloneBatch(b), true
}

func (v *transactionView) FindSolution(id string) (domain.Solution, bool) {
	s, ok := v.state.solutions[id]
	if !ok {
		return domain.Solution{}, false
	}
	return cloneSolution(s), true
}
