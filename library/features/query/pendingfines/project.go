package pendingfines

import (
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the fines, newest first.
//
// Query Logic:
//
//	GIVEN: All fines, users and books
//	WHEN: PendingFines query is executed
//	THEN: Fines is returned with the sum of the pending amounts
//	EXCLUDES: paid and waived fines, unless IncludeClosed is set
func Project(history core.DomainEvents, query Query) Fines {
	books := readmodel.Books(history)
	users := readmodel.Users(history)
	result := Fines{Fines: []Fine{}}

	for _, fine := range readmodel.Fines(history) {
		if fine.IsPending() {
			result.TotalPendiente += fine.Amount
		} else if !query.IncludeClosed {
			continue
		}

		result.Fines = append(result.Fines, Fine{
			ID:              fine.FineID,
			Monto:           fine.Amount,
			FechaGeneracion: fine.AssessedAt,
			Estado:          fine.Status,
			DiasRetraso:     fine.DaysOverdue,
			Usuario:         readmodel.UserOrUnknown(users, fine.ReaderID),
			Libro:           readmodel.BookOrUnknown(books, fine.BookID),
			IDPrestamo:      fine.LoanID,
		})
	}

	slices.Reverse(result.Fines)
	result.Count = len(result.Fines)
	result.TotalPendiente = core.RoundMoney(result.TotalPendiente)

	return result
}

// BuildEventFilter selects all fines and the users and books they refer to.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.FineAssessedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
			core.UserRegisteredEventType,
			core.UserProfileUpdatedEventType,
			core.BookAddedToCatalogEventType,
		).
		Finalize()
}
