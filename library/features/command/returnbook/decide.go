package returnbook

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgLoanNotFound = "Préstamo no encontrado"
)

type loan struct {
	started  bool
	returned bool
	readerID core.UserIDString
	bookID   core.BookIDString
	dueAt    time.Time
}

// Decide determines the outcome of a return.
//
// Business Rules:
//
//	GIVEN: an active loan
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event is generated
//	THEN: FineAssessed event is generated additionally if the return is late, one fine per started day overdue
//	ERROR: "Préstamo no encontrado" if the loan does not exist
//	IDEMPOTENCY: If the loan was already returned, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	l := project(history, command.LoanID)

	if !l.started {
		return core.RejectedDecision(core.NotFound(msgLoanNotFound))
	}

	if l.returned {
		return core.IdempotentDecision()
	}

	returned := core.BuildBookReturned(command.LoanID, l.readerID, l.bookID, command.ReceivedBy, command.OccurredAt)

	daysOverdue := policy.DaysOverdue(l.dueAt, command.OccurredAt)
	if daysOverdue == 0 {
		return core.SuccessDecision(returned)
	}

	return core.SuccessDecision(
		returned,
		core.BuildFineAssessed(
			core.FineIDFor(command.LoanID),
			command.LoanID,
			l.readerID,
			l.bookID,
			policy.FineFor(daysOverdue),
			daysOverdue,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, loanID core.LoanIDString) loan {
	var l loan

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanStarted:
			if e.LoanID == loanID {
				l = loan{started: true, readerID: e.ReaderID, bookID: e.BookID, dueAt: e.DueAt}
			}

		case core.LoanRenewed:
			if e.LoanID == loanID {
				l.dueAt = e.DueAt
			}

		case core.BookReturned:
			l.returned = l.returned || e.LoanID == loanID
		}
	}

	return l
}
