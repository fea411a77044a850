package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

type stubRule struct {
	name     string
	severity domain.Severity
}

func (r stubRule) Name() string { return r.name }

func (r stubRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var res domain.Result
	for _, ch := range changes {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.name,
			Severity: r.severity,
			Message:  "flagged",
			Entity:   ch.Entity,
		})
	}
	return res, nil
}

type sizeHook struct{}

func (sizeHook) Name() string              { return "substrate_size" }
func (sizeHook) Entity() domain.EntityType { return domain.EntitySubstrate }

func (sizeHook) Normalize(_ context.Context, _ domain.NormalizeContext, record any) (any, error) {
	sub := record.(domain.Substrate)
	if dims, ok := domain.SizeDimensions(sub.Size); ok {
		sub.LengthMM = dims.LengthMM
		sub.WidthMM = dims.WidthMM
		sub.DepthMM = dims.DepthMM
	}
	return sub, nil
}

type expandHook struct{}

func (expandHook) Name() string              { return "batch_expand" }
func (expandHook) Entity() domain.EntityType { return domain.EntitySubstrateBatch }

func (expandHook) Normalize(_ context.Context, nctx domain.NormalizeContext, record any) (any, error) {
	batch := record.(domain.SubstrateBatch)
	if !batch.CreateSubstrates {
		return batch, nil
	}
	batch.Entities = nil
	for i := 0; i < batch.NumberOfSubstrates; i++ {
		child := domain.Substrate{
			Name:     fmt.Sprintf("%s %d", batch.Name, i),
			Supplier: batch.Supplier,
			Size:     batch.Size,
		}
		child.ID = fmt.Sprintf("%s-%d", batch.LabID, i)
		created, err := nctx.Tx.CreateSubstrate(child)
		if err != nil {
			return nil, err
		}
		batch.Entities = append(batch.Entities, domain.SubstrateRef{
			SubstrateID: created.ID,
			Name:        created.Name,
			LabID:       created.ID,
		})
	}
	batch.CreateSubstrates = false
	return batch, nil
}

type runawayHook struct{}

func (runawayHook) Name() string              { return "runaway" }
func (runawayHook) Entity() domain.EntityType { return domain.EntitySubstrate }

func (runawayHook) Normalize(_ context.Context, nctx domain.NormalizeContext, record any) (any, error) {
	sub := record.(domain.Substrate)
	if _, err := nctx.Tx.CreateSubstrate(domain.Substrate{Name: sub.Name + "x"}); err != nil {
		return nil, err
	}
	return sub, nil
}

func fixedClock(t *testing.T, store *Store) time.Time {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SetNowFunc(func() time.Time { return now })
	return now
}

func TestRunInTransactionCommitsCreatedRecords(t *testing.T) {
	store := NewStore(nil, nil)
	now := fixedClock(t, store)

	var created domain.Substrate
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSubstrate(domain.Substrate{Name: "glass", Size: domain.SizeSpinCoating})
		return err
	}); err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	got, ok := store.GetSubstrate(created.ID)
	if !ok {
		t.Fatalf("substrate not committed")
	}
	if got.Name != "glass" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	store := NewStore(nil, nil)
	boom := errors.New("boom")
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateSolution(domain.Solution{Name: "ink"}); err != nil {
			return err
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := store.ListSolutions(); len(got) != 0 {
		t.Fatalf("expected empty store after rollback, got %d", len(got))
	}
}

func TestRunInTransactionBlockedByRule(t *testing.T) {
	rules := domain.NewRulesEngine()
	rules.Register(stubRule{name: "deny", severity: domain.SeverityBlock})
	store := NewStore(rules, nil)

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateCleaning(domain.Cleaning{Name: "clean"})
		return err
	})
	var violation domain.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if len(violation.Result.Violations) != 1 {
		t.Fatalf("expected one violation, got %d", len(violation.Result.Violations))
	}
	if got := store.ListCleanings(); len(got) != 0 {
		t.Fatalf("blocked transaction must not commit")
	}
}

func TestRunInTransactionWarningsCommit(t *testing.T) {
	rules := domain.NewRulesEngine()
	rules.Register(stubRule{name: "advise", severity: domain.SeverityWarn})
	store := NewStore(rules, nil)

	res, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateCleaning(domain.Cleaning{Name: "clean"})
		return err
	})
	if err != nil {
		t.Fatalf("warnings should not block: %v", err)
	}
	if len(res.Violations) != 1 || res.Violations[0].Severity != domain.SeverityWarn {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := store.ListCleanings(); len(got) != 1 {
		t.Fatalf("expected committed cleaning")
	}
}

func TestNormalizersRunOnSaveAndCascade(t *testing.T) {
	normalizers := domain.NewNormalizerEngine()
	normalizers.Register(sizeHook{})
	normalizers.Register(expandHook{})
	store := NewStore(nil, normalizers)

	var batch domain.SubstrateBatch
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		batch, err = tx.CreateSubstrateBatch(domain.SubstrateBatch{
			Name:               "run 12",
			LabID:              "B12",
			Size:               domain.SizeSpinCoating,
			NumberOfSubstrates: 3,
			CreateSubstrates:   true,
		})
		return err
	}); err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	committed, ok := store.GetSubstrateBatch(batch.ID)
	if !ok {
		t.Fatalf("batch not committed")
	}
	if committed.CreateSubstrates {
		t.Fatalf("expansion trigger should be cleared")
	}
	if len(committed.Entities) != 3 {
		t.Fatalf("expected 3 children, got %d", len(committed.Entities))
	}
	for i, ref := range committed.Entities {
		want := fmt.Sprintf("B12-%d", i)
		if ref.SubstrateID != want {
			t.Fatalf("child %d: got id %q, want %q", i, ref.SubstrateID, want)
		}
		child, ok := store.GetSubstrate(ref.SubstrateID)
		if !ok {
			t.Fatalf("child %s missing", ref.SubstrateID)
		}
		// The substrate hook must also have run on hook-created children.
		if child.LengthMM != 20 || child.WidthMM != 10 {
			t.Fatalf("child %s dimensions not normalized: %+v", ref.SubstrateID, child)
		}
	}
}

func TestNormalizeDispatchLimit(t *testing.T) {
	normalizers := domain.NewNormalizerEngine()
	normalizers.Register(runawayHook{})
	store := NewStore(nil, normalizers)

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateSubstrate(domain.Substrate{Name: "seed"})
		return err
	})
	if err == nil || !strings.Contains(err.Error(), "dispatch limit") {
		t.Fatalf("expected dispatch limit error, got %v", err)
	}
	if got := store.ListSubstrates(); len(got) != 0 {
		t.Fatalf("failed normalization must not commit")
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	store := NewStore(nil, nil)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetNowFunc(func() time.Time { return created })

	var sol domain.Solution
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		sol, err = tx.CreateSolution(domain.Solution{Name: "ink"})
		return err
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	later := created.Add(48 * time.Hour)
	store.SetNowFunc(func() time.Time { return later })
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateSolution(sol.ID, func(s *domain.Solution) error {
			s.Name = "ink v2"
			return nil
		})
		return err
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, _ := store.GetSolution(sol.ID)
	if got.Name != "ink v2" {
		t.Fatalf("update not applied: %q", got.Name)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(later) {
		t.Fatalf("timestamps wrong: %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := NewStore(nil, nil)
	var exp domain.Experiment
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		exp, err = tx.CreateExperiment(domain.Experiment{Name: "oct batch"})
		return err
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteExperiment(exp.ID)
	}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.GetExperiment(exp.ID); ok {
		t.Fatalf("experiment should be gone")
	}
	if err := func() error {
		_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
			return tx.DeleteExperiment(exp.ID)
		})
		return err
	}(); err == nil {
		t.Fatalf("double delete should fail")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewStore(nil, nil)
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateSubstrate(domain.Substrate{Name: "a"}); err != nil {
			return err
		}
		if _, err := tx.CreateSolution(domain.Solution{Name: "ink", Solvents: []domain.SolventComponent{{Name: "CB", SolventRatio: 1}}}); err != nil {
			return err
		}
		_, err := tx.CreateAnnealing(domain.Annealing{Name: "anneal", SampleIDs: []string{"B1-0"}})
		return err
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	snap := store.ExportState()
	restored := NewStore(nil, nil)
	restored.ImportState(snap)

	if len(restored.ListSubstrates()) != 1 || len(restored.ListSolutions()) != 1 || len(restored.ListAnnealings()) != 1 {
		t.Fatalf("restore incomplete")
	}
	sols := restored.ListSolutions()
	if len(sols[0].Solvents) != 1 || sols[0].Solvents[0].Name != "CB" {
		t.Fatalf("solution components lost in round trip: %+v", sols[0])
	}
}

func TestListReturnsClones(t *testing.T) {
	store := NewStore(nil, nil)
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateCleaning(domain.Cleaning{Name: "std", SampleIDs: []string{"B1-0"}})
		return err
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	listed := store.ListCleanings()
	listed[0].SampleIDs[0] = "mutated"
	fresh := store.ListCleanings()
	if fresh[0].SampleIDs[0] != "B1-0" {
		t.Fatalf("store state leaked through list result")
	}
}
