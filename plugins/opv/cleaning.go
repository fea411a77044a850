package opv

import (
	"context"
	"fmt"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// standardProtocolHook replaces the step list of a Standard cleaning record
// with the fixed four-bath lab protocol. Custom records keep their steps,
// receiving only the default bath duration where one is missing.
type standardProtocolHook struct{}

func (standardProtocolHook) Name() string { return "cleaning_standard_protocol" }

func (standardProtocolHook) Entity() domain.EntityType { return domain.EntityCleaning }

func (standardProtocolHook) Normalize(_ context.Context, _ domain.NormalizeContext, record any) (any, error) {
	cleaning, ok := record.(domain.Cleaning)
	if !ok {
		return record, fmt.Errorf("cleaning_standard_protocol: unexpected record type %T", record)
	}
	if cleaning.Supplier == "" {
		cleaning.Supplier = domain.DefaultSupplier
	}
	if cleaning.Procedure == domain.ProcedureStandard {
		cleaning.Steps = domain.StandardCleaningProtocol()
		return cleaning, nil
	}
	for i := range cleaning.Steps {
		if cleaning.Steps[i].DurationS == 0 {
			cleaning.Steps[i].DurationS = domain.DefaultCleaningDuration
		}
	}
	return cleaning, nil
}
