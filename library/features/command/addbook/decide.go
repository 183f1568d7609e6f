package addbook

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgMissingFields    = "El ISBN y el nombre son obligatorios"
	msgNegativeCopies   = "La cantidad no puede ser negativa"
	msgISBNAlreadyInUse = "Ya existe un libro con ese ISBN"
)

type state struct {
	bookAlreadyAdded  bool
	isbnInUseByOthers map[core.BookIDString]bool
}

// Decide determines whether the book can be added to the catalog.
//
// Business Rules:
//
//	GIVEN: an ISBN, a title and a number of copies
//	WHEN: AddBook command is received
//	THEN: BookAddedToCatalog event is generated
//	ERROR: "El ISBN y el nombre son obligatorios" if one of them is empty
//	ERROR: "La cantidad no puede ser negativa" if copies < 0
//	ERROR: "Ya existe un libro con ese ISBN" if a book in the catalog has this ISBN
//	IDEMPOTENCY: If the book id was already added, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.ISBN == "" || command.Title == "" {
		return core.RejectedDecision(core.InvalidInput(msgMissingFields))
	}

	if command.Copies < 0 {
		return core.RejectedDecision(core.InvalidInput(msgNegativeCopies))
	}

	s := project(history, command.BookID, command.ISBN)

	if s.bookAlreadyAdded {
		return core.IdempotentDecision()
	}

	if len(s.isbnInUseByOthers) > 0 {
		return core.RejectedDecision(core.Conflict(msgISBNAlreadyInUse))
	}

	return core.SuccessDecision(
		core.BuildBookAddedToCatalog(
			command.BookID,
			command.ISBN,
			command.Title,
			command.Authors,
			command.Genres,
			command.Copies,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, bookID core.BookIDString, isbn core.ISBNString) state {
	s := state{isbnInUseByOthers: make(map[core.BookIDString]bool)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookAlreadyAdded = true
				continue
			}

			if e.ISBN == isbn {
				s.isbnInUseByOthers[e.BookID] = true
			}

		case core.BookRemovedFromCatalog:
			delete(s.isbnInUseByOthers, e.BookID)
		}
	}

	return s
}

// BuildEventFilter selects the catalog entries with this book id or this ISBN.
func BuildEventFilter(bookID core.BookIDString, isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType, core.BookRemovedFromCatalogEventType).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID),
			eventstore.P("ISBN", isbn),
		).
		Finalize()
}
