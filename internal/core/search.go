package core

import (
	"context"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// SearchQuery describes a reference-usage lookup against the host index.
type SearchQuery struct {
	// EntityTypes restricts matches to the given record types.
	EntityTypes []domain.EntityType
	// ReferencesID matches records holding a reference to this record ID.
	ReferencesID string
	// PageSize bounds the number of returned hits; usage checks ask for 1.
	PageSize int
}

// SearchHit is one matching record.
type SearchHit struct {
	Entity domain.EntityType
	ID     string
}

// SearchResult carries the total match count alongside the requested page.
type SearchResult struct {
	Total int
	Hits  []SearchHit
}

// SearchIndex is the injected lookup capability. The hosting environment
// owns the index; this module only queries it.
type SearchIndex interface {
	Search(ctx context.Context, query SearchQuery) (SearchResult, error)
}
