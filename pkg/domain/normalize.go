package domain

import (
	"context"
	"fmt"
	"time"
)

// Logger is the minimal structured logging contract carried through
// normalization. Reference-resolution failures are reported here and
// otherwise ignored; everything else propagates as errors.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ArchiveInfo describes a stored archive entry for a generated record.
type ArchiveInfo struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	ETag      string    `json:"etag,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ArchiveWriter persists generated child records as standalone archive
// entries, mirroring how the hosting ELN materializes one file per entry.
type ArchiveWriter interface {
	WriteEntry(ctx context.Context, key string, record any) (ArchiveInfo, error)
}

// NormalizeContext carries the collaborators a normalizer may use: the open
// transaction for record lookups and child creation, the archive writer for
// generated entries, and a logger for best-effort diagnostics.
type NormalizeContext struct {
	Tx      Transaction
	Archive ArchiveWriter
	Logger  Logger
	Now     time.Time
}

// Normalizer is a save-time hook attached to one entity type. It receives
// the record being saved and returns the (possibly mutated) record. Hooks
// may create or update further records through the transaction; those
// changes are normalized in turn.
type Normalizer interface {
	Name() string
	Entity() EntityType
	Normalize(ctx context.Context, nctx NormalizeContext, record any) (any, error)
}

// NormalizerEngine dispatches save-time hooks by entity type.
type NormalizerEngine struct {
	hooks map[EntityType][]Normalizer
}

// NewNormalizerEngine constructs an empty engine.
func NewNormalizerEngine() *NormalizerEngine {
	return &NormalizerEngine{hooks: make(map[EntityType][]Normalizer)}
}

// Register appends a hook for its declared entity type.
func (e *NormalizerEngine) Register(n Normalizer) {
	if n == nil {
		return
	}
	e.hooks[n.Entity()] = append(e.hooks[n.Entity()], n)
}

// Hooks returns the hooks registered for an entity type.
func (e *NormalizerEngine) Hooks(entity EntityType) []Normalizer {
	out := make([]Normalizer, len(e.hooks[entity]))
	copy(out, e.hooks[entity])
	return out
}

// Normalize runs all hooks registered for the entity in registration order,
// threading the record through each. The second return reports whether any
// hook ran.
func (e *NormalizerEngine) Normalize(ctx context.Context, nctx NormalizeContext, entity EntityType, record any) (any, bool, error) {
	hooks := e.hooks[entity]
	if len(hooks) == 0 {
		return record, false, nil
	}
	current := record
	for _, hook := range hooks {
		next, err := hook.Normalize(ctx, nctx, current)
		if err != nil {
			return nil, true, fmt.Errorf("normalizer %s: %w", hook.Name(), err)
		}
		current = next
	}
	return current, true, nil
}
