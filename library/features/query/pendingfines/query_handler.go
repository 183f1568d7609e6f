package pendingfines

import (
	"context"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// QueryHandler orchestrates Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle executes the query with eventual consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Fines, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	history, _, err := shell.LoadHistory(ctx, h.eventStore, BuildEventFilter())
	if err != nil {
		return Fines{}, err
	}

	return Project(history, query), nil
}
