package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.UserRegisteredEventType:
		return unmarshalAs[core.UserRegistered](payload)
	case core.UserProfileUpdatedEventType:
		return unmarshalAs[core.UserProfileUpdated](payload)
	case core.UserRoleChangedEventType:
		return unmarshalAs[core.UserRoleChanged](payload)

	case core.BookAddedToCatalogEventType:
		return unmarshalAs[core.BookAddedToCatalog](payload)
	case core.BookCopiesAdjustedEventType:
		return unmarshalAs[core.BookCopiesAdjusted](payload)
	case core.BookRemovedFromCatalogEventType:
		return unmarshalAs[core.BookRemovedFromCatalog](payload)

	case core.LoanRequestedEventType:
		return unmarshalAs[core.LoanRequested](payload)
	case core.LoanRequestApprovedEventType:
		return unmarshalAs[core.LoanRequestApproved](payload)
	case core.LoanRequestRejectedEventType:
		return unmarshalAs[core.LoanRequestRejected](payload)
	case core.LoanStartedEventType:
		return unmarshalAs[core.LoanStarted](payload)
	case core.LoanRenewedEventType:
		return unmarshalAs[core.LoanRenewed](payload)
	case core.BookReturnedEventType:
		return unmarshalAs[core.BookReturned](payload)

	case core.FineAssessedEventType:
		return unmarshalAs[core.FineAssessed](payload)
	case core.FinePaidEventType:
		return unmarshalAs[core.FinePaid](payload)
	case core.FineWaivedEventType:
		return unmarshalAs[core.FineWaived](payload)

	case core.ReservationPlacedEventType:
		return unmarshalAs[core.ReservationPlaced](payload)
	case core.ReservationCanceledEventType:
		return unmarshalAs[core.ReservationCanceled](payload)

	case core.RequestingLoanFailedEventType:
		return unmarshalAs[core.RequestingLoanFailed](payload)
	case core.ApprovingLoanRequestFailedEventType:
		return unmarshalAs[core.ApprovingLoanRequestFailed](payload)
	case core.RenewingLoanFailedEventType:
		return unmarshalAs[core.RenewingLoanFailed](payload)
	case core.PlacingReservationFailedEventType:
		return unmarshalAs[core.PlacingReservationFailed](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalAs[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
