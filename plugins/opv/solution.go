package opv

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// solutionCompositionHook computes component volumes and masses when the
// calculate_solution trigger is set, and renders the preparation report.
//
// Solvents split the total volume proportionally to their ratios. Donors and
// acceptors share one ratio pool: each mass is the total solute mass (target
// concentration times total volume) scaled by its ratio share. Additives are
// dosed as a volume percentage of the total.
type solutionCompositionHook struct{}

func (solutionCompositionHook) Name() string { return "solution_composition" }

func (solutionCompositionHook) Entity() domain.EntityType { return domain.EntitySolution }

func (solutionCompositionHook) Normalize(_ context.Context, _ domain.NormalizeContext, record any) (any, error) {
	solution, ok := record.(domain.Solution)
	if !ok {
		return record, fmt.Errorf("solution_composition: unexpected record type %T", record)
	}
	if !solution.Calculate {
		return solution, nil
	}
	if solution.TotalVolumeML == 0 {
		solution.TotalVolumeML = domain.DefaultTotalVolumeML
	}
	if solution.SoluteConcMgPerML == 0 {
		solution.SoluteConcMgPerML = domain.DefaultSoluteConcMgPerML
	}

	var lines []string

	solventRatios := make([]float64, len(solution.Solvents))
	for i, c := range solution.Solvents {
		solventRatios[i] = componentRatio(c.SolventRatio)
	}
	solventTotal := floats.Sum(solventRatios)
	if len(solution.Solvents) == 0 {
		lines = append(lines, "No solvent components defined")
	} else {
		for i := range solution.Solvents {
			volume := solution.TotalVolumeML * solventRatios[i] / solventTotal
			solution.Solvents[i].VolumeML = &volume
			lines = append(lines, fmt.Sprintf("Solvent %s: %.3f ml", solution.Solvents[i].Name, volume))
		}
	}

	organicRatios := make([]float64, 0, len(solution.Donors)+len(solution.Acceptors))
	for _, c := range solution.Donors {
		organicRatios = append(organicRatios, componentRatio(c.Ratio))
	}
	for _, c := range solution.Acceptors {
		organicRatios = append(organicRatios, componentRatio(c.Ratio))
	}
	soluteMass := solution.SoluteConcMgPerML * solution.TotalVolumeML
	organicTotal := floats.Sum(organicRatios)
	if len(solution.Donors) == 0 {
		lines = append(lines, "No donor components defined")
	} else {
		for i := range solution.Donors {
			mass := soluteMass * componentRatio(solution.Donors[i].Ratio) / organicTotal
			solution.Donors[i].MassMG = &mass
			lines = append(lines, fmt.Sprintf("Donor %s: %.3f mg", solution.Donors[i].Name, mass))
		}
	}
	if len(solution.Acceptors) == 0 {
		lines = append(lines, "No acceptor components defined")
	} else {
		for i := range solution.Acceptors {
			mass := soluteMass * componentRatio(solution.Acceptors[i].Ratio) / organicTotal
			solution.Acceptors[i].MassMG = &mass
			lines = append(lines, fmt.Sprintf("Acceptor %s: %.3f mg", solution.Acceptors[i].Name, mass))
		}
	}

	if len(solution.Additives) == 0 {
		lines = append(lines, "No additive components defined")
	} else {
		for i := range solution.Additives {
			volume := solution.TotalVolumeML * solution.Additives[i].LiquidVolumePercent / 100
			solution.Additives[i].VolumeML = &volume
			lines = append(lines, fmt.Sprintf("Additive %s: %.3f ml", solution.Additives[i].Name, volume))
		}
	}

	solution.Report = strings.Join(lines, "\n")
	solution.Calculate = false
	return solution, nil
}

// componentRatio substitutes the schema default for unset ratios so a partly
// filled form still yields a proportional split.
func componentRatio(ratio float64) float64 {
	if ratio == 0 {
		return domain.DefaultComponentRatio
	}
	return ratio
}
