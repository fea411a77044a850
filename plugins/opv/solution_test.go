package opv_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSolventVolumesSplitByRatio(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name: "active layer",
		Solvents: []domain.SolventComponent{
			{Name: "CB", SolventRatio: 1},
			{Name: "CF", SolventRatio: 1},
			{Name: "o-XY", SolventRatio: 2},
		},
		TotalVolumeML: 2,
		Calculate:     true,
	})
	if err != nil {
		t.Fatalf("save solution: %v", err)
	}
	if saved.Calculate {
		t.Fatal("expected calculate trigger to be cleared")
	}
	want := []float64{0.5, 0.5, 1.0}
	for i, c := range saved.Solvents {
		if c.VolumeML == nil || !almostEqual(*c.VolumeML, want[i]) {
			t.Fatalf("solvent %s volume %v, want %v", c.Name, c.VolumeML, want[i])
		}
	}
	if !strings.Contains(saved.Report, "Solvent CB: 0.500 ml") {
		t.Fatalf("unexpected report:\n%s", saved.Report)
	}
}

func TestOrganicMassesShareRatioPool(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name:              "blend",
		Donors:            []domain.OrganicComponent{{Name: "PM6", Ratio: 1}},
		Acceptors:         []domain.OrganicComponent{{Name: "Y6", Ratio: 1}},
		TotalVolumeML:     1,
		SoluteConcMgPerML: 15,
		Calculate:         true,
	})
	if err != nil {
		t.Fatalf("save solution: %v", err)
	}
	if saved.Donors[0].MassMG == nil || !almostEqual(*saved.Donors[0].MassMG, 7.5) {
		t.Fatalf("donor mass %v, want 7.5", saved.Donors[0].MassMG)
	}
	if saved.Acceptors[0].MassMG == nil || !almostEqual(*saved.Acceptors[0].MassMG, 7.5) {
		t.Fatalf("acceptor mass %v, want 7.5", saved.Acceptors[0].MassMG)
	}
	if !strings.Contains(saved.Report, "Donor PM6: 7.500 mg") ||
		!strings.Contains(saved.Report, "Acceptor Y6: 7.500 mg") {
		t.Fatalf("unexpected report:\n%s", saved.Report)
	}
}

func TestAdditiveVolumeByPercent(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name:          "doped",
		Additives:     []domain.AdditiveComponent{{Name: "DIO", LiquidVolumePercent: 5}},
		TotalVolumeML: 2,
		Calculate:     true,
	})
	if err != nil {
		t.Fatalf("save solution: %v", err)
	}
	if saved.Additives[0].VolumeML == nil || !almostEqual(*saved.Additives[0].VolumeML, 0.1) {
		t.Fatalf("additive volume %v, want 0.1", saved.Additives[0].VolumeML)
	}
}

func TestEmptyComponentListsReported(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name:      "empty",
		Calculate: true,
	})
	if err != nil {
		t.Fatalf("save solution: %v", err)
	}
	for _, want := range []string{
		"No solvent components defined",
		"No donor components defined",
		"No acceptor components defined",
		"No additive components defined",
	} {
		if !strings.Contains(saved.Report, want) {
			t.Fatalf("report missing %q:\n%s", want, saved.Report)
		}
	}
	if saved.TotalVolumeML != domain.DefaultTotalVolumeML {
		t.Fatalf("expected default total volume, got %v", saved.TotalVolumeML)
	}
	if saved.SoluteConcMgPerML != domain.DefaultSoluteConcMgPerML {
		t.Fatalf("expected default concentration, got %v", saved.SoluteConcMgPerML)
	}
}

func TestUnsetRatiosDefaultToOne(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name: "lazy",
		Solvents: []domain.SolventComponent{
			{Name: "CB"},
			{Name: "CF"},
		},
		TotalVolumeML: 1,
		Calculate:     true,
	})
	if err != nil {
		t.Fatalf("save solution: %v", err)
	}
	for _, c := range saved.Solvents {
		if c.VolumeML == nil || !almostEqual(*c.VolumeML, 0.5) {
			t.Fatalf("solvent %s volume %v, want 0.5", c.Name, c.VolumeML)
		}
	}
}

func TestNegativeRatioBlocksCommit(t *testing.T) {
	svc := newPluginService(t)
	_, _, err := svc.SaveSolution(context.Background(), domain.Solution{
		Name:   "bad",
		Donors: []domain.OrganicComponent{{Name: "PM6", Ratio: -1}},
	})
	var violation domain.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if len(svc.ListSolutions()) != 0 {
		t.Fatal("expected blocked solution not to commit")
	}
}
