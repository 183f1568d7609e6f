package rejectloanrequest

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgRequestNotFound = "Solicitud no encontrada"
	msgNotPending      = "La solicitud no está en estado pendiente"
)

type state struct {
	requested bool
	readerID  core.UserIDString
	approved  bool
	rejected  bool
}

// Decide determines whether the loan request can be rejected.
//
// Business Rules:
//
//	GIVEN: a pending loan request
//	WHEN: RejectLoanRequest command is received
//	THEN: LoanRequestRejected event is generated
//	ERROR: "Solicitud no encontrada" if the request does not exist
//	ERROR: "La solicitud no está en estado pendiente" if the request was approved
//	IDEMPOTENCY: If the request was already rejected, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.RequestID)

	if !s.requested {
		return core.RejectedDecision(core.NotFound(msgRequestNotFound))
	}

	if s.rejected {
		return core.IdempotentDecision()
	}

	if s.approved {
		return core.RejectedDecision(core.InvalidState(msgNotPending))
	}

	return core.SuccessDecision(
		core.BuildLoanRequestRejected(command.RequestID, s.readerID, command.RejectedBy, command.OccurredAt),
	)
}

func project(history core.DomainEvents, requestID core.RequestIDString) state {
	var s state

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanRequested:
			if e.RequestID == requestID {
				s.requested = true
				s.readerID = e.ReaderID
			}

		case core.LoanRequestApproved:
			s.approved = s.approved || e.RequestID == requestID

		case core.LoanRequestRejected:
			s.rejected = s.rejected || e.RequestID == requestID
		}
	}

	return s
}

// BuildEventFilter selects the events of one loan request.
func BuildEventFilter(requestID core.RequestIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanRequestedEventType,
			core.LoanRequestApprovedEventType,
			core.LoanRequestRejectedEventType,
		).
		AndAnyPredicateOf(eventstore.P("RequestID", requestID)).
		Finalize()
}
