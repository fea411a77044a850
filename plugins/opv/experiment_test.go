package opv_test

import (
	"context"
	"testing"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

func TestNarrativeDefaultsFilled(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveExperiment(context.Background(), domain.Experiment{
		Name:     "run 12",
		Comments: "inverted architecture",
	})
	if err != nil {
		t.Fatalf("save experiment: %v", err)
	}
	if saved.Objectives != domain.DefaultObjectivesText {
		t.Fatalf("objectives %q", saved.Objectives)
	}
	if saved.Conclusions != domain.DefaultConclusionsText {
		t.Fatalf("conclusions %q", saved.Conclusions)
	}
	if saved.Measurements != domain.DefaultMeasurementsText {
		t.Fatalf("measurements %q", saved.Measurements)
	}
	if saved.Comments != "inverted architecture" {
		t.Fatalf("expected user comments kept, got %q", saved.Comments)
	}
}

func TestDanglingExperimentReferencesWarn(t *testing.T) {
	svc := newPluginService(t)
	batch := seedExpandedBatch(t, svc, "NX", 1)

	_, result, err := svc.SaveExperiment(context.Background(), domain.Experiment{
		Name:              "run 13",
		SubstrateBatchIDs: []string{batch.ID, "ghost-batch"},
		SolutionIDs:       []string{"ghost-solution"},
	})
	if err != nil {
		t.Fatalf("save experiment: %v", err)
	}
	warnings := 0
	for _, v := range result.Violations {
		if v.Rule == "experiment_references" && v.Severity == domain.SeverityWarn {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected 2 reference warnings, got %d: %+v", warnings, result.Violations)
	}
	if len(svc.ListExperiments()) != 1 {
		t.Fatal("expected experiment committed despite warnings")
	}
}
