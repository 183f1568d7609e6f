package readerfines

import (
	"slices"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the fines of one reader, newest first.
//
// Query Logic:
//
//	GIVEN: The loans and fines of a reader and the books they borrowed
//	WHEN: ReaderFines query is executed
//	THEN: ReaderFines is returned with the sum of the pending amounts
//	INCLUDES: pending, paid and waived fines
func Project(history core.DomainEvents, query Query) ReaderFines {
	books := readmodel.Books(history)
	loans := make(map[core.LoanIDString]*readmodel.Loan)

	for _, loan := range readmodel.OfReader(readmodel.Loans(history), query.ReaderID) {
		loans[loan.LoanID] = loan
	}

	result := ReaderFines{Fines: []Fine{}}

	for _, fine := range readmodel.OfReader(readmodel.Fines(history), query.ReaderID) {
		entry := Fine{
			ID:              fine.FineID,
			PrestamoID:      fine.LoanID,
			Libro:           readmodel.BookOrUnknown(books, fine.BookID),
			DiasRetraso:     fine.DaysOverdue,
			MontoMulta:      fine.Amount,
			Estado:          fine.Status,
			FechaGeneracion: fine.AssessedAt,
			Descripcion:     LateReturnDescription,
		}

		if loan, ok := loans[fine.LoanID]; ok {
			entry.FechaVencimiento = loan.DueAt
			entry.FechaDevolucion = loan.ReturnedAt
		}

		if fine.Status == readmodel.FineStatusPaid {
			paidAt := fine.ClosedAt
			entry.FechaPago = &paidAt
		}

		if fine.IsPending() {
			result.TotalPendiente += fine.Amount
		}

		result.Fines = append(result.Fines, entry)
	}

	slices.Reverse(result.Fines)
	result.TotalPendiente = core.RoundMoney(result.TotalPendiente)

	return result
}

// BuildEventFilter selects the loans and fines of the reader and the books they were for.
func BuildEventFilter(readerID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanStartedEventType,
			core.LoanRenewedEventType,
			core.BookReturnedEventType,
			core.FineAssessedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReaderID", readerID)).
		OrMatching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType).
		Finalize()
}
