package adjustbookcopies

import (
	"fmt"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgBookNotFound   = "Libro no encontrado"
	msgNegativeCopies = "La cantidad no puede ser negativa"
	msgCopiesInUse    = "No se puede reducir la cantidad por debajo de %d copias en uso"
)

// Decide determines whether the number of copies can be changed.
//
// Business Rules:
//
//	GIVEN: a book in the catalog
//	WHEN: AdjustBookCopies command is received
//	THEN: BookCopiesAdjusted event is generated
//	ERROR: "Libro no encontrado" if the book is not in the catalog
//	ERROR: "La cantidad no puede ser negativa" if copies < 0
//	ERROR: copies in use if copies is below the lent plus held copies
//	IDEMPOTENCY: If the book already has that number of copies, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	if command.Copies < 0 {
		return core.RejectedDecision(core.InvalidInput(msgNegativeCopies))
	}

	c := core.ProjectCirculation(history, command.BookID, command.OccurredAt, policy)

	if !c.InCatalog {
		return core.RejectedDecision(core.NotFound(msgBookNotFound))
	}

	if c.Copies == command.Copies {
		return core.IdempotentDecision()
	}

	if inUse := len(c.ActiveLoans) + len(c.Held); command.Copies < inUse {
		return core.RejectedDecision(core.Conflict(fmt.Sprintf(msgCopiesInUse, inUse)))
	}

	return core.SuccessDecision(
		core.BuildBookCopiesAdjusted(command.BookID, command.Copies, command.OccurredAt),
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
