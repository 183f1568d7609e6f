package processfine

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgInvalidAction   = "Acción no válida. Use 'pagar' o 'condonar'."
	msgFineNotFound    = "Multa no encontrada"
	msgFineNotPending  = "La multa ya no está pendiente"
	msgReaderCantWaive = "Solo un bibliotecario puede condonar multas"
)

type fine struct {
	assessed bool
	readerID core.UserIDString
	paid     bool
	waived   bool
}

// Decide determines the outcome of paying or waiving a fine.
//
// Business Rules:
//
//	GIVEN: a pending fine
//	WHEN: ProcessFine command is received
//	THEN: FinePaid or FineWaived event is generated
//	ERROR: "Acción no válida. Use 'pagar' o 'condonar'." if the action is unknown
//	ERROR: "Multa no encontrada" if the fine does not exist, or is not the reader's own fine
//	ERROR: "Solo un bibliotecario puede condonar multas" if a reader tries to waive
//	ERROR: "La multa ya no está pendiente" if the fine was paid or waived
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.Action != ActionPay && command.Action != ActionWaive {
		return core.RejectedDecision(core.InvalidInput(msgInvalidAction))
	}

	f := project(history, command.FineID)

	if !f.assessed || (command.ByReader && f.readerID != command.ProcessedBy) {
		return core.RejectedDecision(core.NotFound(msgFineNotFound))
	}

	if command.ByReader && command.Action == ActionWaive {
		return core.RejectedDecision(core.Forbidden(msgReaderCantWaive))
	}

	if f.paid || f.waived {
		return core.RejectedDecision(core.InvalidState(msgFineNotPending))
	}

	if command.Action == ActionWaive {
		return core.SuccessDecision(
			core.BuildFineWaived(command.FineID, f.readerID, command.ProcessedBy, command.OccurredAt),
		)
	}

	return core.SuccessDecision(
		core.BuildFinePaid(command.FineID, f.readerID, command.ProcessedBy, command.OccurredAt),
	)
}

func project(history core.DomainEvents, fineID core.FineIDString) fine {
	var f fine

	for _, event := range history {
		switch e := event.(type) {
		case core.FineAssessed:
			if e.FineID == fineID {
				f.assessed = true
				f.readerID = e.ReaderID
			}

		case core.FinePaid:
			f.paid = f.paid || e.FineID == fineID

		case core.FineWaived:
			f.waived = f.waived || e.FineID == fineID
		}
	}

	return f
}

// BuildEventFilter selects the events of one fine.
func BuildEventFilter(fineID core.FineIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FineAssessedEventType, core.FinePaidEventType, core.FineWaivedEventType).
		AndAnyPredicateOf(eventstore.P("FineID", fineID)).
		Finalize()
}
