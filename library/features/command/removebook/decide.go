package removebook

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgBookNotFound = "Libro no encontrado"
	msgBookHasLoans = "El libro tiene préstamos activos"
)

// Decide determines whether the book can be removed from the catalog.
//
// Business Rules:
//
//	GIVEN: a book in the catalog without active loans
//	WHEN: RemoveBook command is received
//	THEN: BookRemovedFromCatalog event is generated
//	ERROR: "Libro no encontrado" if the book was never added
//	ERROR: "El libro tiene préstamos activos" if a copy is still lent
//	IDEMPOTENCY: If the book was already removed, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	c := core.ProjectCirculation(history, command.BookID, command.OccurredAt, policy)

	if c.Removed {
		return core.IdempotentDecision()
	}

	if !c.InCatalog {
		return core.RejectedDecision(core.NotFound(msgBookNotFound))
	}

	if len(c.ActiveLoans) > 0 {
		return core.RejectedDecision(core.Conflict(msgBookHasLoans))
	}

	return core.SuccessDecision(
		core.BuildBookRemovedFromCatalog(command.BookID, c.ISBN, command.OccurredAt),
	)
}

// BuildEventFilter selects the circulation of the book.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	circulationEventTypes := core.CirculationEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(circulationEventTypes[0], circulationEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
