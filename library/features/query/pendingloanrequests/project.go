package pendingloanrequests

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the pending loan requests, oldest first.
//
// Query Logic:
//
//	GIVEN: All loan requests, users and books
//	WHEN: PendingLoanRequests query is executed
//	THEN: PendingLoanRequests is returned in the order the requests were made
//	EXCLUDES: approved and rejected requests
func Project(history core.DomainEvents, _ Query) PendingLoanRequests {
	books := readmodel.Books(history)
	users := readmodel.Users(history)
	result := PendingLoanRequests{Requests: []Request{}}

	for _, request := range readmodel.Requests(history) {
		if request.Status != readmodel.RequestStatusPending {
			continue
		}

		libros := make([]readmodel.BookRef, 0, len(request.BookIDs))
		for _, bookID := range request.BookIDs {
			libros = append(libros, readmodel.BookOrUnknown(books, bookID))
		}

		result.Requests = append(result.Requests, Request{
			ID:             request.RequestID,
			Usuario:        readmodel.UserOrUnknown(users, request.ReaderID),
			FechaSolicitud: request.RequestedAt,
			Estado:         request.Status,
			Libros:         libros,
		})
	}

	result.Count = len(result.Requests)

	return result
}

// BuildEventFilter selects the loan requests and the users and books they refer to.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanRequestedEventType,
			core.LoanRequestApprovedEventType,
			core.LoanRequestRejectedEventType,
			core.UserRegisteredEventType,
			core.UserProfileUpdatedEventType,
			core.BookAddedToCatalogEventType,
		).
		Finalize()
}
