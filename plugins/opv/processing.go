package opv

import (
	"context"
	"fmt"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// samplePropagationHook fills the sample list of a fabrication step from its
// referenced substrate batch when the step does not name samples itself. A
// reference to a missing batch is logged and otherwise ignored so a step can
// be drafted before its batch exists.
type samplePropagationHook struct {
	entity domain.EntityType
}

func (h samplePropagationHook) Name() string {
	return fmt.Sprintf("%s_sample_propagation", h.entity)
}

func (h samplePropagationHook) Entity() domain.EntityType { return h.entity }

func (h samplePropagationHook) Normalize(_ context.Context, nctx domain.NormalizeContext, record any) (any, error) {
	switch step := record.(type) {
	case domain.Cleaning:
		step.SampleIDs = h.propagate(nctx, step.ID, step.SubstrateBatchID, step.SampleIDs)
		return step, nil
	case domain.BladeCoating:
		step.SampleIDs = h.propagate(nctx, step.ID, step.SubstrateBatchID, step.SampleIDs)
		return step, nil
	case domain.SpinCoating:
		step.SampleIDs = h.propagate(nctx, step.ID, step.SubstrateBatchID, step.SampleIDs)
		return step, nil
	case domain.Annealing:
		step.SampleIDs = h.propagate(nctx, step.ID, step.SubstrateBatchID, step.SampleIDs)
		return step, nil
	default:
		return record, fmt.Errorf("%s: unexpected record type %T", h.Name(), record)
	}
}

func (h samplePropagationHook) propagate(nctx domain.NormalizeContext, recordID string, batchID *string, samples []string) []string {
	if len(samples) > 0 || batchID == nil || *batchID == "" {
		return samples
	}
	batch, found := nctx.Tx.FindSubstrateBatch(*batchID)
	if !found {
		if nctx.Logger != nil {
			nctx.Logger.Warn("substrate batch reference unresolved",
				"entity", string(h.entity), "record_id", recordID, "batch_id", *batchID)
		}
		return samples
	}
	out := make([]string, 0, len(batch.Entities))
	for _, ref := range batch.Entities {
		out = append(out, ref.SubstrateID)
	}
	return out
}
