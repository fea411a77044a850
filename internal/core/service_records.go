package core

import (
	"context"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// Save operations upsert one record inside a transaction: normalize hooks
// run over the pending changes, rules evaluate, and the commit either lands
// or surfaces a RuleViolationError.

// SavePureSubstance creates or replaces a pure substance.
func (s *Service) SavePureSubstance(ctx context.Context, record domain.PureSubstance) (domain.PureSubstance, Result, error) {
	ctx, finish := s.begin(ctx, "save_pure_substance")
	var saved domain.PureSubstance
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetPureSubstance(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdatePureSubstance(record.ID, func(r *domain.PureSubstance) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreatePureSubstance(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetPureSubstance(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntityPureSubstance, saved.ID, err)
	return saved, res, err
}

// DeletePureSubstance removes a pure substance record.
func (s *Service) DeletePureSubstance(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_pure_substance")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeletePureSubstance(id)
	})
	finish(domain.EntityPureSubstance, id, err)
	return res, err
}

// GetPureSubstance fetches one record by ID.
func (s *Service) GetPureSubstance(id string) (domain.PureSubstance, bool) {
	return s.store.GetPureSubstance(id)
}

// ListPureSubstances returns all records sorted by ID.
func (s *Service) ListPureSubstances() []domain.PureSubstance { return s.store.ListPureSubstances() }

// SaveSubstrate creates or replaces a substrate.
func (s *Service) SaveSubstrate(ctx context.Context, record domain.Substrate) (domain.Substrate, Result, error) {
	ctx, finish := s.begin(ctx, "save_substrate")
	var saved domain.Substrate
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetSubstrate(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateSubstrate(record.ID, func(r *domain.Substrate) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateSubstrate(record)
		return err
	})
	if err == nil {
		// The size hook may have applied dimensions; return the committed state.
		if committed, ok := s.store.GetSubstrate(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntitySubstrate, saved.ID, err)
	return saved, res, err
}

// DeleteSubstrate removes a substrate record.
func (s *Service) DeleteSubstrate(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_substrate")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteSubstrate(id)
	})
	finish(domain.EntitySubstrate, id, err)
	return res, err
}

// GetSubstrate fetches one record by ID.
func (s *Service) GetSubstrate(id string) (domain.Substrate, bool) {
	return s.store.GetSubstrate(id)
}

// ListSubstrates returns all records sorted by ID.
func (s *Service) ListSubstrates() []domain.Substrate { return s.store.ListSubstrates() }

// SaveSubstrateBatch creates or replaces a substrate batch. Saving with the
// create trigger set expands the batch into its child substrates.
func (s *Service) SaveSubstrateBatch(ctx context.Context, record domain.SubstrateBatch) (domain.SubstrateBatch, Result, error) {
	ctx, finish := s.begin(ctx, "save_substrate_batch")
	var saved domain.SubstrateBatch
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetSubstrateBatch(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateSubstrateBatch(record.ID, func(r *domain.SubstrateBatch) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateSubstrateBatch(record)
		return err
	})
	if err == nil {
		// Hooks may have rewritten the record; return the committed state.
		if committed, ok := s.store.GetSubstrateBatch(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntitySubstrateBatch, saved.ID, err)
	return saved, res, err
}

// DeleteSubstrateBatch removes a batch record.
func (s *Service) DeleteSubstrateBatch(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_substrate_batch")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteSubstrateBatch(id)
	})
	finish(domain.EntitySubstrateBatch, id, err)
	return res, err
}

// GetSubstrateBatch fetches one record by ID.
func (s *Service) GetSubstrateBatch(id string) (domain.SubstrateBatch, bool) {
	return s.store.GetSubstrateBatch(id)
}

// ListSubstrateBatches returns all records sorted by ID.
func (s *Service) ListSubstrateBatches() []domain.SubstrateBatch {
	return s.store.ListSubstrateBatches()
}

// SaveSolution creates or replaces a solution. Saving with Calculate set
// fills component volumes and masses and regenerates the report.
func (s *Service) SaveSolution(ctx context.Context, record domain.Solution) (domain.Solution, Result, error) {
	ctx, finish := s.begin(ctx, "save_solution")
	var saved domain.Solution
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetSolution(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateSolution(record.ID, func(r *domain.Solution) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateSolution(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetSolution(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntitySolution, saved.ID, err)
	return saved, res, err
}

// DeleteSolution removes a solution record.
func (s *Service) DeleteSolution(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_solution")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteSolution(id)
	})
	finish(domain.EntitySolution, id, err)
	return res, err
}

// GetSolution fetches one record by ID.
func (s *Service) GetSolution(id string) (domain.Solution, bool) {
	return s.store.GetSolution(id)
}

// ListSolutions returns all records sorted by ID.
func (s *Service) ListSolutions() []domain.Solution { return s.store.ListSolutions() }

// SaveCleaning creates or replaces a cleaning process.
func (s *Service) SaveCleaning(ctx context.Context, record domain.Cleaning) (domain.Cleaning, Result, error) {
	ctx, finish := s.begin(ctx, "save_cleaning")
	var saved domain.Cleaning
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetCleaning(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateCleaning(record.ID, func(r *domain.Cleaning) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateCleaning(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetCleaning(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntityCleaning, saved.ID, err)
	return saved, res, err
}

// DeleteCleaning removes a cleaning record.
func (s *Service) DeleteCleaning(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_cleaning")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteCleaning(id)
	})
	finish(domain.EntityCleaning, id, err)
	return res, err
}

// GetCleaning fetches one record by ID.
func (s *Service) GetCleaning(id string) (domain.Cleaning, bool) {
	return s.store.GetCleaning(id)
}

// ListCleanings returns all records sorted by ID.
func (s *Service) ListCleanings() []domain.Cleaning { return s.store.ListCleanings() }

// SaveBladeCoating creates or replaces a blade-coating process.
func (s *Service) SaveBladeCoating(ctx context.Context, record domain.BladeCoating) (domain.BladeCoating, Result, error) {
	ctx, finish := s.begin(ctx, "save_blade_coating")
	var saved domain.BladeCoating
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetBladeCoating(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateBladeCoating(record.ID, func(r *domain.BladeCoating) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateBladeCoating(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetBladeCoating(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntityBladeCoating, saved.ID, err)
	return saved, res, err
}

// DeleteBladeCoating removes a blade-coating record.
func (s *Service) DeleteBladeCoating(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_blade_coating")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteBladeCoating(id)
	})
	finish(domain.EntityBladeCoating, id, err)
	return res, err
}

// GetBladeCoating fetches one record by ID.
func (s *Service) GetBladeCoating(id string) (domain.BladeCoating, bool) {
	return s.store.GetBladeCoating(id)
}

// ListBladeCoatings returns all records sorted by ID.
func (s *Service) ListBladeCoatings() []domain.BladeCoating { return s.store.ListBladeCoatings() }

// SaveSpinCoating creates or replaces a spin-coating process.
func (s *Service) SaveSpinCoating(ctx context.Context, record domain.SpinCoating) (domain.SpinCoating, Result, error) {
	ctx, finish := s.begin(ctx, "save_spin_coating")
	var saved domain.SpinCoating
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetSpinCoating(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateSpinCoating(record.ID, func(r *domain.SpinCoating) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateSpinCoating(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetSpinCoating(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntitySpinCoating, saved.ID, err)
	return saved, res, err
}

// DeleteSpinCoating removes a spin-coating record.
func (s *Service) DeleteSpinCoating(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_spin_coating")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteSpinCoating(id)
	})
	finish(domain.EntitySpinCoating, id, err)
	return res, err
}

// GetSpinCoating fetches one record by ID.
func (s *Service) GetSpinCoating(id string) (domain.SpinCoating, bool) {
	return s.store.GetSpinCoating(id)
}

// ListSpinCoatings returns all records sorted by ID.
func (s *Service) ListSpinCoatings() []domain.SpinCoating { return s.store.ListSpinCoatings() }

// SaveAnnealing creates or replaces an annealing process.
func (s *Service) SaveAnnealing(ctx context.Context, record domain.Annealing) (domain.Annealing, Result, error) {
	ctx, finish := s.begin(ctx, "save_annealing")
	var saved domain.Annealing
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetAnnealing(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateAnnealing(record.ID, func(r *domain.Annealing) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateAnnealing(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetAnnealing(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntityAnnealing, saved.ID, err)
	return saved, res, err
}

// DeleteAnnealing removes an annealing record.
func (s *Service) DeleteAnnealing(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_annealing")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteAnnealing(id)
	})
	finish(domain.EntityAnnealing, id, err)
	return res, err
}

// GetAnnealing fetches one record by ID.
func (s *Service) GetAnnealing(id string) (domain.Annealing, bool) {
	return s.store.GetAnnealing(id)
}

// ListAnnealings returns all records sorted by ID.
func (s *Service) ListAnnealings() []domain.Annealing { return s.store.ListAnnealings() }

// SaveExperiment creates or replaces an experiment.
func (s *Service) SaveExperiment(ctx context.Context, record domain.Experiment) (domain.Experiment, Result, error) {
	ctx, finish := s.begin(ctx, "save_experiment")
	var saved domain.Experiment
	_, exists := s.existing(record.ID, func(id string) bool { _, ok := s.store.GetExperiment(id); return ok })
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if exists {
			saved, err = tx.UpdateExperiment(record.ID, func(r *domain.Experiment) error {
				*r = record
				return nil
			})
			return err
		}
		saved, err = tx.CreateExperiment(record)
		return err
	})
	if err == nil {
		if committed, ok := s.store.GetExperiment(saved.ID); ok {
			saved = committed
		}
	}
	finish(domain.EntityExperiment, saved.ID, err)
	return saved, res, err
}

// DeleteExperiment removes an experiment record.
func (s *Service) DeleteExperiment(ctx context.Context, id string) (Result, error) {
	ctx, finish := s.begin(ctx, "delete_experiment")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteExperiment(id)
	})
	finish(domain.EntityExperiment, id, err)
	return res, err
}

// GetExperiment fetches one record by ID.
func (s *Service) GetExperiment(id string) (domain.Experiment, bool) {
	return s.store.GetExperiment(id)
}

// ListExperiments returns all records sorted by ID.
func (s *Service) ListExperiments() []domain.Experiment { return s.store.ListExperiments() }

// existing reports whether an upsert should take the update path.
func (s *Service) existing(id string, lookup func(string) bool) (string, bool) {
	if id == "" {
		return "", false
	}
	return id, lookup(id)
}
