// Package core exposes the transactional service surface over the domain
// stores, plugin installation, and the observability contracts.
package core

import (
	"github.com/mcasademont9/nomad-forematics/pkg/domain"
)

type (
	Transaction      = domain.Transaction
	TransactionView  = domain.TransactionView
	PersistentStore  = domain.PersistentStore
	Result           = domain.Result
	Rule             = domain.Rule
	RulesEngine      = domain.RulesEngine
	Normalizer       = domain.Normalizer
	NormalizerEngine = domain.NormalizerEngine
	EntityType       = domain.EntityType
	Logger           = domain.Logger
	ArchiveWriter    = domain.ArchiveWriter
)

// NewRulesEngine constructs a rules engine instance.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }

// NewNormalizerEngine constructs a normalizer engine instance.
func NewNormalizerEngine() *NormalizerEngine { return domain.NewNormalizerEngine() }
