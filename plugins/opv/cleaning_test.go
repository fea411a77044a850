package opv_test

import (
	"context"
	"testing"

	"github.com/mcasademont9/nomad-forematics/internal/core"
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

func TestStandardProcedureExpandsProtocol(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveCleaning(context.Background(), domain.Cleaning{
		Name:      "wash",
		Procedure: domain.ProcedureStandard,
		Steps: []domain.CleaningStep{
			{Agent: domain.AgentUVOzone, DurationS: 42},
		},
	})
	if err != nil {
		t.Fatalf("save cleaning: %v", err)
	}
	want := []struct {
		agent    domain.CleaningAgent
		duration float64
	}{
		{domain.AgentAcetone, 300},
		{domain.AgentHellmanex, 300},
		{domain.AgentIPA, 300},
		{domain.AgentNaOH, 600},
	}
	if len(saved.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(saved.Steps))
	}
	for i, step := range saved.Steps {
		if step.Agent != want[i].agent || step.DurationS != want[i].duration {
			t.Fatalf("step %d: %+v", i, step)
		}
		if !step.Sonication {
			t.Fatalf("step %d not sonicated", i)
		}
	}
}

func TestCustomProcedureKeepsSteps(t *testing.T) {
	svc := newPluginService(t)
	saved, _, err := svc.SaveCleaning(context.Background(), domain.Cleaning{
		Name:      "rinse",
		Procedure: domain.ProcedureCustom,
		Steps: []domain.CleaningStep{
			{Agent: domain.AgentIPA, Sonication: true, DurationS: 120},
			{Agent: domain.AgentUVOzone},
		},
	})
	if err != nil {
		t.Fatalf("save cleaning: %v", err)
	}
	if len(saved.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(saved.Steps))
	}
	if saved.Steps[0].DurationS != 120 {
		t.Fatalf("expected explicit duration kept, got %v", saved.Steps[0].DurationS)
	}
	if saved.Steps[1].DurationS != domain.DefaultCleaningDuration {
		t.Fatalf("expected default duration, got %v", saved.Steps[1].DurationS)
	}
}

func seedExpandedBatch(t *testing.T, svc *core.Service, id string, count int) domain.SubstrateBatch {
	t.Helper()
	batch := domain.SubstrateBatch{
		Name:               "Seed " + id,
		LabID:              id,
		NumberOfSubstrates: count,
		CreateSubstrates:   true,
	}
	batch.ID = id
	saved, _, err := svc.SaveSubstrateBatch(context.Background(), batch)
	if err != nil {
		t.Fatalf("seed batch %s: %v", id, err)
	}
	return saved
}

func TestCleaningSamplePropagationFromBatch(t *testing.T) {
	svc := newPluginService(t)
	ctx := context.Background()
	batch := seedExpandedBatch(t, svc, "NP", 2)

	saved, _, err := svc.SaveCleaning(ctx, domain.Cleaning{
		Name:             "wash",
		SubstrateBatchID: &batch.ID,
	})
	if err != nil {
		t.Fatalf("save cleaning: %v", err)
	}
	if len(saved.SampleIDs) != 2 || saved.SampleIDs[0] != "NP-0" || saved.SampleIDs[1] != "NP-1" {
		t.Fatalf("unexpected samples: %v", saved.SampleIDs)
	}
}

func TestExplicitSamplesNotOverwritten(t *testing.T) {
	svc := newPluginService(t)
	ctx := context.Background()
	batch := seedExpandedBatch(t, svc, "NQ", 3)

	saved, _, err := svc.SaveAnnealing(ctx, domain.Annealing{
		Name:             "anneal",
		SubstrateBatchID: &batch.ID,
		SampleIDs:        []string{"NQ-2"},
	})
	if err != nil {
		t.Fatalf("save annealing: %v", err)
	}
	if len(saved.SampleIDs) != 1 || saved.SampleIDs[0] != "NQ-2" {
		t.Fatalf("unexpected samples: %v", saved.SampleIDs)
	}
}

func TestMissingBatchReferenceIgnored(t *testing.T) {
	svc := newPluginService(t)
	missing := "nowhere"
	saved, _, err := svc.SaveSpinCoating(context.Background(), domain.SpinCoating{
		Name:             "coat",
		SubstrateBatchID: &missing,
	})
	if err != nil {
		t.Fatalf("save spin coating: %v", err)
	}
	if len(saved.SampleIDs) != 0 {
		t.Fatalf("expected no samples, got %v", saved.SampleIDs)
	}
}

func TestBladeCoatingSamplePropagation(t *testing.T) {
	svc := newPluginService(t)
	batch := seedExpandedBatch(t, svc, "NR", 1)

	saved, _, err := svc.SaveBladeCoating(context.Background(), domain.BladeCoating{
		Name:             "blade",
		SubstrateBatchID: &batch.ID,
	})
	if err != nil {
		t.Fatalf("save blade coating: %v", err)
	}
	if len(saved.SampleIDs) != 1 || saved.SampleIDs[0] != "NR-0" {
		t.Fatalf("unexpected samples: %v", saved.SampleIDs)
	}
}
