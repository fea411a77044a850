package memory

import "github.com/mcasademont9/nomad-forematics/pkg/domain"

func (s *Store) GetPureSubstance(id string) (domain.PureSubstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.substances[id]
	if !ok {
		return domain.PureSubstance{}, false
	}
	return cloneSubstance(p), true
}

func (s *Store) GetSubstrate(id string) (domain.Substrate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.substrates[id]
	if !ok {
		return domain.Substrate{}, false
	}
	return cloneSubstrate(v), true
}

func (s *Store) GetSubstrateBatch(id string) (domain.SubstrateBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.batches[id]
	if !ok {
		return domain.SubstrateBatch{}, false
	}
	return cloneBatch(v), true
}

func (s *Store) GetSolution(id string) (domain.Solution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.solutions[id]
	if !ok {
		return domain.Solution{}, false
	}
	return cloneSolution(v), true
}

func (s *Store) GetCleaning(id string) (domain.Cleaning, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.cleanings[id]
	if !ok {
		return domain.Cleaning{}, false
	}
	return cloneCleaning(v), true
}

func (s *Store) GetBladeCoating(id string) (domain.BladeCoating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.bladeCoatings[id]
	if !ok {
		return domain.BladeCoating{}, false
	}
	return cloneBladeCoating(v), true
}

func (s *Store) GetSpinCoating(id string) (domain.SpinCoating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.spinCoatings[id]
	if !ok {
		return domain.SpinCoating{}, false
	}
	return cloneSpinCoating(v), true
}

func (s *Store) GetAnnealing(id string) (domain.Annealing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.annealings[id]
	if !ok {
		return domain.Annealing{}, false
	}
	return cloneAnnealing(v), true
}

func (s *Store) GetExperiment(id string) (domain.Experiment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.experiments[id]
	if !ok {
		return domain.Experiment{}, false
	}
	return cloneExperiment(v), true
}

func (s *Store) ListPureSubstances() []domain.PureSubstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListPureSubstances()
}

func (s *Store) ListSubstrates() []domain.Substrate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListSubstrates()
}

func (s *Store) ListSubstrateBatches() []domain.SubstrateBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListSubstrateBatches()
}

func (s *Store) ListSolutions() []domain.Solution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListSolutions()
}

func (s *Store) ListCleanings() []domain.Cleaning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListCleanings()
}

func (s *Store) ListBladeCoatings() []domain.BladeCoating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListBladeCoatings()
}

func (s *Store) ListSpinCoatings() []domain.SpinCoating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListSpinCoatings()
}

func (s *Store) ListAnnealings() []domain.Annealing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListAnnealings()
}

func (s *Store) ListExperiments() []domain.Experiment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListExperiments()
}
