package opv

import (
	"context"
	"fmt"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// componentRatioRule blocks solutions whose changed records carry negative
// ratios, volume percentages, total volume, or solute concentration. The
// composition hook divides by ratio sums, so bad inputs must never commit.
type componentRatioRule struct{}

func (componentRatioRule) Name() string { return "solution_component_ratios" }

func (componentRatioRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	block := func(id, message string) {
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "solution_component_ratios",
			Severity: domain.SeverityBlock,
			Message:  message,
			Entity:   domain.EntitySolution,
			EntityID: id,
		})
	}
	for _, change := range changes {
		if change.Entity != domain.EntitySolution || change.Action == domain.ActionDelete {
			continue
		}
		solution, ok := change.After.(domain.Solution)
		if !ok {
			continue
		}
		if solution.TotalVolumeML < 0 {
			block(solution.ID, fmt.Sprintf("total volume %.3f ml is negative", solution.TotalVolumeML))
		}
		if solution.SoluteConcMgPerML < 0 {
			block(solution.ID, fmt.Sprintf("solute concentration %.3f mg/ml is negative", solution.SoluteConcMgPerML))
		}
		for _, c := range solution.Solvents {
			if c.SolventRatio < 0 {
				block(solution.ID, fmt.Sprintf("solvent %s has negative ratio %.3f", c.Name, c.SolventRatio))
			}
		}
		for _, c := range solution.Donors {
			if c.Ratio < 0 {
				block(solution.ID, fmt.Sprintf("donor %s has negative ratio %.3f", c.Name, c.Ratio))
			}
		}
		for _, c := range solution.Acceptors {
			if c.Ratio < 0 {
				block(solution.ID, fmt.Sprintf("acceptor %s has negative ratio %.3f", c.Name, c.Ratio))
			}
		}
		for _, c := range solution.Additives {
			if c.LiquidVolumePercent < 0 {
				block(solution.ID, fmt.Sprintf("additive %s has negative volume percent %.3f", c.Name, c.LiquidVolumePercent))
			}
		}
	}
	return result, nil
}

// batchInventoryRule warns when a batch's resolved substrate references do
// not match its declared count. Only settled batches are checked; a pending
// create_substrates trigger will rebuild the list in the same transaction.
type batchInventoryRule struct{}

func (batchInventoryRule) Name() string { return "substrate_batch_inventory" }

func (batchInventoryRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, change := range changes {
		if change.Entity != domain.EntitySubstrateBatch || change.Action == domain.ActionDelete {
			continue
		}
		batch, ok := change.After.(domain.SubstrateBatch)
		if !ok || batch.CreateSubstrates {
			continue
		}
		if len(batch.Entities) != batch.NumberOfSubstrates {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "substrate_batch_inventory",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("batch declares %d substrates but references %d", batch.NumberOfSubstrates, len(batch.Entities)),
				Entity:   domain.EntitySubstrateBatch,
				EntityID: batch.ID,
			})
		}
	}
	return result, nil
}

// experimentReferenceRule warns about experiment references to batches or
// solutions that do not exist. Experiments aggregate work in progress, so
// dangling references are reported rather than blocked.
type experimentReferenceRule struct{}

func (experimentReferenceRule) Name() string { return "experiment_references" }

func (experimentReferenceRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	warn := func(id, message string) {
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "experiment_references",
			Severity: domain.SeverityWarn,
			Message:  message,
			Entity:   domain.EntityExperiment,
			EntityID: id,
		})
	}
	for _, change := range changes {
		if change.Entity != domain.EntityExperiment || change.Action == domain.ActionDelete {
			continue
		}
		experiment, ok := change.After.(domain.Experiment)
		if !ok {
			continue
		}
		for _, batchID := range experiment.SubstrateBatchIDs {
			if _, found := view.FindSubstrateBatch(batchID); !found {
				warn(experiment.ID, fmt.Sprintf("substrate batch %s not found", batchID))
			}
		}
		for _, solutionID := range experiment.SolutionIDs {
			if _, found := view.FindSolution(solutionID); !found {
				warn(experiment.ID, fmt.Sprintf("solution %s not found", solutionID))
			}
		}
	}
	return result, nil
}
