package readerloans

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists the active loans and the loan history of one reader.
//
// Query Logic:
//
//	GIVEN: The history of a reader merged with the circulation of the books they touched
//	WHEN: ReaderLoans query is executed
//	THEN: ReaderLoans is returned
//	INCLUDES: active loans by due date, history newest first with pending and rejected requests
//	EXCLUDES: approved requests, they show up as their loans
func Project(history core.DomainEvents, query Query, policy core.Policy) ReaderLoans {
	books := readmodel.Books(history)
	fines := make(map[core.LoanIDString]float64)

	for _, fine := range readmodel.OfReader(readmodel.Fines(history), query.ReaderID) {
		fines[fine.LoanID] += fine.Amount
	}

	result := ReaderLoans{
		Active:  []ActiveLoan{},
		History: []HistoryEntry{},
	}

	for _, loan := range readmodel.OfReader(readmodel.Loans(history), query.ReaderID) {
		book := readmodel.BookOrUnknown(books, loan.BookID)
		dueAt := loan.DueAt
		entry := HistoryEntry{
			ID:              loan.LoanID,
			Libro:           book,
			FechaPrestamo:   loan.StartedAt,
			FechaDevolucion: &dueAt,
			Renovaciones:    loan.Renewals,
		}

		if loan.Returned {
			returnedAt := loan.ReturnedAt
			entry.FechaDevolucionReal = &returnedAt
			entry.Estado = core.LoanStatusReturned
			entry.DiasRetraso = policy.DaysOverdue(loan.DueAt, loan.ReturnedAt)
			entry.Multa = fines[loan.LoanID]
			result.History = append(result.History, entry)

			continue
		}

		daysOverdue := policy.DaysOverdue(loan.DueAt, query.At)
		status := policy.ActiveLoanStatus(loan.DueAt, query.At)
		queue := core.ProjectCirculation(history, loan.BookID, query.At, policy).Queue

		entry.Estado = status
		entry.DiasRetraso = daysOverdue
		entry.Multa = policy.FineFor(daysOverdue)
		result.History = append(result.History, entry)

		result.Active = append(result.Active, ActiveLoan{
			ID:                  loan.LoanID,
			Libro:               book,
			FechaPrestamo:       loan.StartedAt,
			FechaVencimiento:    loan.DueAt,
			DiasRestantes:       policy.DaysRemaining(loan.DueAt, query.At),
			RenovacionesUsadas:  loan.Renewals,
			RenovacionesMaximas: policy.MaxRenewals,
			PuedeRenovar:        status != core.LoanStatusOverdue && loan.Renewals < policy.MaxRenewals && len(queue) == 0,
			Estado:              status,
			MultaAcumulada:      policy.FineFor(daysOverdue),
		})
	}

	for _, request := range readmodel.OfReader(readmodel.Requests(history), query.ReaderID) {
		if request.Status == readmodel.RequestStatusApproved {
			continue
		}

		for _, bookID := range request.BookIDs {
			result.History = append(result.History, HistoryEntry{
				ID:            request.RequestID,
				Libro:         readmodel.BookOrUnknown(books, bookID),
				FechaPrestamo: request.RequestedAt,
				Estado:        request.Status,
			})
		}
	}

	slices.SortStableFunc(result.Active, func(a, b ActiveLoan) int {
		return a.FechaVencimiento.Compare(b.FechaVencimiento)
	})

	slices.SortStableFunc(result.History, func(a, b HistoryEntry) int {
		return cmp.Or(b.FechaPrestamo.Compare(a.FechaPrestamo), cmp.Compare(a.ID, b.ID))
	})

	return result
}
