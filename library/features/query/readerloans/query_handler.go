package readerloans

import (
	"context"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// QueryHandler orchestrates Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
	policy     core.Policy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithPolicy sets the circulation rules.
func WithPolicy(policy core.Policy) Option {
	return func(h *QueryHandler) {
		h.policy = policy
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(eventStore shell.QueriesEvents, opts ...Option) QueryHandler {
	handler := QueryHandler{eventStore: eventStore, policy: core.DefaultPolicy()}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the query with eventual consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReaderLoans, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	history, err := readmodel.LoadReaderHistory(ctx, h.eventStore, query.ReaderID)
	if err != nil {
		return ReaderLoans{}, err
	}

	return Project(history, query, h.policy), nil
}
