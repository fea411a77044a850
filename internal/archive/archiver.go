package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// EntrySuffix is appended to every archive entry key, matching the one-file-
// per-record layout the hosting notebook uses for generated entries.
const EntrySuffix = ".archive.json"

// JSONArchiver writes records as standalone JSON archive entries. It adapts
// a Store to the ArchiveWriter contract normalize hooks depend on.
type JSONArchiver struct {
	store Store
}

var _ domain.ArchiveWriter = (*JSONArchiver)(nil)

// NewJSONArchiver wraps store in the ArchiveWriter contract.
func NewJSONArchiver(store Store) *JSONArchiver {
	return &JSONArchiver{store: store}
}

// Store exposes the underlying backend, mainly for inspection in tests.
func (a *JSONArchiver) Store() Store { return a.store }

// WriteEntry marshals record and stores it under key + ".archive.json".
// Keys already ending in the suffix are stored as-is, so re-expansion of the
// same record overwrites its previous entry instead of accumulating copies.
func (a *JSONArchiver) WriteEntry(ctx context.Context, key string, record any) (domain.ArchiveInfo, error) {
	if strings.TrimSpace(key) == "" {
		return domain.ArchiveInfo{}, fmt.Errorf("archive entry key required")
	}
	if !strings.HasSuffix(key, EntrySuffix) {
		key += EntrySuffix
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return domain.ArchiveInfo{}, fmt.Errorf("marshal archive entry %s: %w", key, err)
	}
	info, err := a.store.Put(ctx, key, bytes.NewReader(payload), PutOptions{ContentType: "application/json"})
	if err != nil {
		return domain.ArchiveInfo{}, fmt.Errorf("store archive entry %s: %w", key, err)
	}
	return domain.ArchiveInfo{
		Key:       info.Key,
		SizeBytes: info.Size,
		ETag:      info.ETag,
		URL:       info.URL,
		CreatedAt: info.LastModified,
	}, nil
}
