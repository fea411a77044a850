package opv_test

import (
	"testing"

	"github.com/mcasademont9/nomad-forematics/internal/core"
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
	"github.com/mcasademont9/nomad-forematics/plugins/opv"
)

func newPluginService(t *testing.T, opts ...core.ServiceOption) *core.Service {
	t.Helper()
	svc := core.NewInMemoryService(core.NewRulesEngine(), core.NewNormalizerEngine(), opts...)
	if _, err := svc.InstallPlugin(opv.New()); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	return svc
}

func TestInstallRegistersAllSections(t *testing.T) {
	svc := core.NewInMemoryService(core.NewRulesEngine(), core.NewNormalizerEngine())
	meta, err := svc.InstallPlugin(opv.New())
	if err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	if meta.Name != "opv" || meta.Version == "" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	entities := []domain.EntityType{
		domain.EntityPureSubstance,
		domain.EntitySubstrate,
		domain.EntitySubstrateBatch,
		domain.EntitySolution,
		domain.EntityCleaning,
		domain.EntityBladeCoating,
		domain.EntitySpinCoating,
		domain.EntityAnnealing,
		domain.EntityExperiment,
	}
	if len(meta.Sections) != len(entities) {
		t.Fatalf("expected %d sections, got %d", len(entities), len(meta.Sections))
	}
	for _, entity := range entities {
		section, ok := meta.Sections[entity]
		if !ok {
			t.Fatalf("missing section for %s", entity)
		}
		if err := section.Validate(); err != nil {
			t.Fatalf("section %s invalid: %v", section.Name, err)
		}
		if section.Category != opv.Category {
			t.Fatalf("section %s category %q", section.Name, section.Category)
		}
	}
}

func TestInstallTwiceFails(t *testing.T) {
	svc := newPluginService(t)
	if _, err := svc.InstallPlugin(opv.New()); err == nil {
		t.Fatal("expected duplicate install to fail")
	}
}
