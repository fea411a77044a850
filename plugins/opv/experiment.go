package opv

import (
	"context"
	"fmt"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// narrativeDefaultsHook seeds the free-text narrative fields of a new
// experiment with the lab's boilerplate prompts. Text the user already wrote
// is never touched.
type narrativeDefaultsHook struct{}

func (narrativeDefaultsHook) Name() string { return "experiment_narrative_defaults" }

func (narrativeDefaultsHook) Entity() domain.EntityType { return domain.EntityExperiment }

func (narrativeDefaultsHook) Normalize(_ context.Context, _ domain.NormalizeContext, record any) (any, error) {
	experiment, ok := record.(domain.Experiment)
	if !ok {
		return record, fmt.Errorf("experiment_narrative_defaults: unexpected record type %T", record)
	}
	if experiment.Objectives == "" {
		experiment.Objectives = domain.DefaultObjectivesText
	}
	if experiment.Comments == "" {
		experiment.Comments = domain.DefaultCommentsText
	}
	if experiment.Conclusions == "" {
		experiment.Conclusions = domain.DefaultConclusionsText
	}
	if experiment.Measurements == "" {
		experiment.Measurements = domain.DefaultMeasurementsText
	}
	return experiment, nil
}
