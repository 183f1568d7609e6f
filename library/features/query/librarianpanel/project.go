package librarianpanel

import (
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project summarizes the work waiting for librarians and the state of the catalog.
//
// Query Logic:
//
//	GIVEN: The circulation of all books, all loan requests and all fines
//	WHEN: LibrarianPanel query is executed
//	THEN: Summary is returned
//	INCLUDES: pending requests, pending fines, books in the catalog, copies available for a new loan
func Project(history core.DomainEvents, query Query, policy core.Policy) Summary {
	var summary Summary

	for _, request := range readmodel.Requests(history) {
		if request.Status == readmodel.RequestStatusPending {
			summary.PrestamosPendientes++
		}
	}

	for _, fine := range readmodel.Fines(history) {
		if fine.IsPending() {
			summary.MultasActivas++
		}
	}

	var bookIDs []core.BookIDString
	for _, event := range history {
		if e, ok := event.(core.BookAddedToCatalog); ok && !slices.Contains(bookIDs, e.BookID) {
			bookIDs = append(bookIDs, e.BookID)
		}
	}

	for _, bookID := range bookIDs {
		c := core.ProjectCirculation(history, bookID, query.At, policy)
		if !c.InCatalog {
			continue
		}

		summary.LibrosEnCatalogo++
		summary.CopiasDisponibles += c.AvailableCopies()
	}

	return summary
}

// BuildEventFilter selects the circulation of all books, the loan requests and the fines.
func BuildEventFilter() eventstore.Filter {
	eventTypes := append(
		core.CirculationEventTypes(),
		core.LoanRequestedEventType,
		core.LoanRequestApprovedEventType,
		core.LoanRequestRejectedEventType,
		core.FineAssessedEventType,
		core.FinePaidEventType,
		core.FineWaivedEventType,
	)

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}
