package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

// ErrNotFound is returned when reference validation fails within service helpers.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrNoEligibleSubstrate reports that no batch entity satisfied the usage
// criteria of a NextUsedIn / NextNotUsedIn lookup.
var ErrNoEligibleSubstrate = errors.New("no substrate matches usage criteria")

// hookCollaborators is satisfied by stores that forward a logger and archive
// writer into the normalize pipeline.
type hookCollaborators interface {
	SetLogger(domain.Logger)
	SetArchiveWriter(domain.ArchiveWriter)
}

// Service exposes higher-level transactional operations over the record store.
type Service struct {
	store       PersistentStore
	rules       *RulesEngine
	normalizers *NormalizerEngine
	plugins     map[string]PluginMetadata
	search      SearchIndex
	archive     ArchiveWriter
	logger      Logger
	audit       AuditRecorder
	metrics     MetricsRecorder
	tracer      Tracer
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithLogger installs the logger used by the service and its normalize hooks.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAuditRecorder installs an audit sink for service operations.
func WithAuditRecorder(r AuditRecorder) ServiceOption {
	return func(s *Service) { s.audit = r }
}

// WithMetricsRecorder installs a metrics sink for service operations.
func WithMetricsRecorder(r MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = r }
}

// WithTracer installs a tracer wrapping service operations.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) { s.tracer = t }
}

// WithSearchIndex injects the host lookup capability used by usage queries.
func WithSearchIndex(idx SearchIndex) ServiceOption {
	return func(s *Service) { s.search = idx }
}

// WithArchiveWriter injects the archive backend handed to normalize hooks.
func WithArchiveWriter(w ArchiveWriter) ServiceOption {
	return func(s *Service) { s.archive = w }
}

// NewService constructs a service backed by the supplied store and engines.
// The engines must be the ones the store evaluates at commit time.
func NewService(store PersistentStore, rules *RulesEngine, normalizers *NormalizerEngine, opts ...ServiceOption) *Service {
	s := &Service{
		store:       store,
		rules:       rules,
		normalizers: normalizers,
		plugins:     make(map[string]PluginMetadata),
		logger:      noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if hc, ok := store.(hookCollaborators); ok {
		hc.SetLogger(s.logger)
		if s.archive != nil {
			hc.SetArchiveWriter(s.archive)
		}
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore { return s.store }

// InstallPlugin registers a plugin, wiring its sections, normalizers, and
// rules into the active engines.
func (s *Service) InstallPlugin(plugin Plugin) (PluginMetadata, error) {
	if plugin == nil {
		return PluginMetadata{}, fmt.Errorf("plugin cannot be nil")
	}
	if _, ok := s.plugins[plugin.Name()]; ok {
		return PluginMetadata{}, fmt.Errorf("plugin %s already registered", plugin.Name())
	}

	registry := NewPluginRegistry()
	if err := plugin.Register(registry); err != nil {
		return PluginMetadata{}, err
	}

	for _, hook := range registry.Normalizers() {
		s.normalizers.Register(hook)
	}
	for _, rule := range registry.Rules() {
		s.rules.Register(rule)
	}

	meta := PluginMetadata{
		Name:     plugin.Name(),
		Version:  plugin.Version(),
		Sections: registry.Sections(),
	}
	s.plugins[plugin.Name()] = meta
	return meta, nil
}

// RegisteredPlugins returns metadata describing installed plugins.
func (s *Service) RegisteredPlugins() []PluginMetadata {
	out := make([]PluginMetadata, 0, len(s.plugins))
	for _, meta := range s.plugins {
		out = append(out, meta)
	}
	return out
}

// begin starts instrumentation for one operation. The returned finish
// records the span, metrics observation, and audit entry.
func (s *Service) begin(ctx context.Context, op string) (context.Context, func(entity EntityType, id string, err error)) {
	started := time.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, op)
	}
	return ctx, func(entity EntityType, id string, err error) {
		if span != nil {
			span.End(err)
		}
		if s.metrics != nil {
			s.metrics.Observe(ctx, op, err == nil, time.Since(started))
		}
		if s.audit != nil {
			entry := AuditEntry{
				Operation:  op,
				Entity:     entity,
				EntityID:   id,
				Status:     AuditStatusSuccess,
				OccurredAt: time.Now().UTC(),
			}
			if err != nil {
				entry.Status = AuditStatusError
				entry.Error = err.Error()
			}
			s.audit.Record(ctx, entry)
		}
	}
}

// NextUsedIn walks the batch's entities in order and returns the first
// substrate that is referenced by at least one record of the given entity
// type according to the injected search index.
func (s *Service) NextUsedIn(ctx context.Context, batchID string, entity EntityType) (domain.Substrate, error) {
	return s.nextByUsage(ctx, "next_used_in", batchID, entity, false)
}

// NextNotUsedIn returns the first batch substrate with no referencing record
// of the given entity type.
func (s *Service) NextNotUsedIn(ctx context.Context, batchID string, entity EntityType) (domain.Substrate, error) {
	return s.nextByUsage(ctx, "next_not_used_in", batchID, entity, true)
}

func (s *Service) nextByUsage(ctx context.Context, op, batchID string, entity EntityType, negate bool) (domain.Substrate, error) {
	ctx, finish := s.begin(ctx, op)
	sub, err := s.findByUsage(ctx, batchID, entity, negate)
	finish(domain.EntitySubstrate, sub.ID, err)
	return sub, err
}

func (s *Service) findByUsage(ctx context.Context, batchID string, entity EntityType, negate bool) (domain.Substrate, error) {
	if s.search == nil {
		return domain.Substrate{}, fmt.Errorf("search index not configured")
	}
	batch, ok := s.store.GetSubstrateBatch(batchID)
	if !ok {
		return domain.Substrate{}, ErrNotFound{Entity: domain.EntitySubstrateBatch, ID: batchID}
	}
	for _, ref := range batch.Entities {
		sub, ok := s.store.GetSubstrate(ref.SubstrateID)
		if !ok {
			// Dangling references are skipped, not fatal.
			s.logger.Warn("substrate reference unresolved", "batch_id", batchID, "substrate_id", ref.SubstrateID)
			continue
		}
		result, err := s.search.Search(ctx, SearchQuery{
			EntityTypes:  []EntityType{entity},
			ReferencesID: sub.ID,
			PageSize:     1,
		})
		if err != nil {
			return domain.Substrate{}, fmt.Errorf("search usage of %s: %w", sub.ID, err)
		}
		if (result.Total > 0) != negate {
			return sub, nil
		}
	}
	return domain.Substrate{}, ErrNoEligibleSubstrate
}
