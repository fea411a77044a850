package opv

import (
	"context"
	"fmt"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// substrateDimensionsHook fills defaults on single substrates and applies
// the fixed dimension triple for the selected size category.
type substrateDimensionsHook struct{}

func (substrateDimensionsHook) Name() string { return "substrate_dimensions" }

func (substrateDimensionsHook) Entity() domain.EntityType { return domain.EntitySubstrate }

func (substrateDimensionsHook) Normalize(_ context.Context, _ domain.NormalizeContext, record any) (any, error) {
	substrate, ok := record.(domain.Substrate)
	if !ok {
		return record, fmt.Errorf("substrate_dimensions: unexpected record type %T", record)
	}
	if substrate.Supplier == "" {
		substrate.Supplier = domain.DefaultSupplier
	}
	if dims, known := domain.SizeDimensions(substrate.Size); known {
		substrate.LengthMM = dims.LengthMM
		substrate.WidthMM = dims.WidthMM
		substrate.DepthMM = dims.DepthMM
	}
	return substrate, nil
}

// batchExpansionHook generates the child substrates of a batch when the
// create_substrates trigger is set. Children are named "<batch name> i" with
// id and lab id "<batch lab id>-i"; re-triggering regenerates the same ids,
// so existing children are overwritten rather than duplicated. Each child is
// also written out as an archive entry; archive failures abort the save.
type batchExpansionHook struct{}

func (batchExpansionHook) Name() string { return "substrate_batch_expansion" }

func (batchExpansionHook) Entity() domain.EntityType { return domain.EntitySubstrateBatch }

func (batchExpansionHook) Normalize(ctx context.Context, nctx domain.NormalizeContext, record any) (any, error) {
	batch, ok := record.(domain.SubstrateBatch)
	if !ok {
		return record, fmt.Errorf("substrate_batch_expansion: unexpected record type %T", record)
	}
	if batch.Supplier == "" {
		batch.Supplier = domain.DefaultSupplier
	}
	if batch.LabID == "" {
		batch.LabID = domain.DefaultBatchLabID
	}
	if !batch.CreateSubstrates {
		return batch, nil
	}
	if batch.NumberOfSubstrates < 0 {
		return batch, fmt.Errorf("substrate_batch_expansion: negative substrate count %d", batch.NumberOfSubstrates)
	}

	batch.Entities = make([]domain.SubstrateRef, 0, batch.NumberOfSubstrates)
	for i := 0; i < batch.NumberOfSubstrates; i++ {
		child := domain.Substrate{
			Name:     fmt.Sprintf("%s %d", batch.Name, i),
			LabID:    fmt.Sprintf("%s-%d", batch.LabID, i),
			Supplier: batch.Supplier,
			Size:     batch.Size,
		}
		child.ID = child.LabID
		if dims, known := domain.SizeDimensions(child.Size); known {
			child.LengthMM = dims.LengthMM
			child.WidthMM = dims.WidthMM
			child.DepthMM = dims.DepthMM
		}

		var saved domain.Substrate
		var err error
		if nctx.Tx.HasSubstrate(child.ID) {
			saved, err = nctx.Tx.UpdateSubstrate(child.ID, func(s *domain.Substrate) error {
				base := s.Base
				*s = child
				s.Base = base
				return nil
			})
		} else {
			saved, err = nctx.Tx.CreateSubstrate(child)
		}
		if err != nil {
			return batch, fmt.Errorf("substrate_batch_expansion: substrate %s: %w", child.ID, err)
		}

		if nctx.Archive != nil {
			if _, err := nctx.Archive.WriteEntry(ctx, saved.Name, saved); err != nil {
				return batch, fmt.Errorf("substrate_batch_expansion: archive %s: %w", saved.ID, err)
			}
		}

		batch.Entities = append(batch.Entities, domain.SubstrateRef{
			SubstrateID: saved.ID,
			Name:        saved.Name,
			LabID:       saved.LabID,
		})
	}
	batch.CreateSubstrates = false
	return batch, nil
}
