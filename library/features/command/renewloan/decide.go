package renewloan

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgLoanNotFound      = "Préstamo no encontrado"
	msgLoanReturned      = "El préstamo ya fue devuelto"
	msgLoanOverdue       = "No se puede renovar un préstamo vencido"
	msgMaxRenewals       = "Se alcanzó el máximo de %d renovaciones"
	msgReadersAreWaiting = "Hay lectores esperando este libro"
)

type loan struct {
	started  bool
	returned bool
	readerID core.UserIDString
	bookID   core.BookIDString
	dueAt    time.Time
	renewals int
}

// Decide determines whether the loan can be renewed.
//
// Business Rules:
//
//	GIVEN: an active loan of the reader that is not overdue
//	WHEN: RenewLoan command is received
//	THEN: LoanRenewed event is generated, the due date moves by one loan period
//	ERROR: "Préstamo no encontrado" if the loan does not exist or belongs to another reader
//	ERROR: RenewingLoanFailed if the loan was returned or is overdue
//	ERROR: RenewingLoanFailed if the maximum number of renewals was reached
//	ERROR: RenewingLoanFailed if other readers are waiting for the book
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	l := project(history, command.LoanID)

	if !l.started || l.readerID != command.ReaderID {
		return core.RejectedDecision(core.NotFound(msgLoanNotFound))
	}

	if l.returned {
		return failed(command, core.InvalidState(msgLoanReturned))
	}

	if command.OccurredAt.After(l.dueAt) {
		return failed(command, core.InvalidState(msgLoanOverdue))
	}

	if l.renewals >= policy.MaxRenewals {
		return failed(command, core.InvalidState(fmt.Sprintf(msgMaxRenewals, policy.MaxRenewals)))
	}

	if c := core.ProjectCirculation(history, l.bookID, command.OccurredAt, policy); len(c.Queue) > 0 {
		return failed(command, core.Conflict(msgReadersAreWaiting))
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(
			command.LoanID,
			command.ReaderID,
			l.bookID,
			l.dueAt.Add(policy.LoanPeriod),
			l.renewals+1,
			command.OccurredAt,
		),
	)
}

func failed(command Command, err error) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildRenewingLoanFailed(command.LoanID, command.ReaderID, err.Error(), command.OccurredAt),
		err,
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
				l.renewals = e.Renewal
			}

		case core.BookReturned:
			l.returned = l.returned || e.LoanID == loanID
		}
	}

	return l
}
