package userlookup

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

// Handle executes the query. Lookups are strongly consistent, a user who just registered must be able to log in.
func (h QueryHandler) Handle(ctx context.Context, query Query) (User, error) {
	ctx = eventstore.WithStrongConsistency(ctx)

	userID := query.UserID

	if userID == "" {
		registrations, _, err := shell.LoadHistory(ctx, h.eventStore, BuildEmailFilter(query.Email))
		if err != nil {
			return User{}, err
		}

		var found bool
		if userID, found = UserIDForEmail(registrations, query.Email); !found {
			return User{}, nil
		}
	}

	history, _, err := shell.LoadHistory(ctx, h.eventStore, BuildEventFilter(userID))
	if err != nil {
		return User{}, err
	}

	return Project(history, userID), nil
}
