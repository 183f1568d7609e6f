// Package memoryengine provides an in-process implementation of the event store.
//
// It follows the same Query and Append contract as postgresengine and is used by tests and
// by the development mode of the server. Nothing is persisted.
package memoryengine

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]any
}

// EventStore keeps all events in a slice guarded by a mutex.
type EventStore struct {
	mu     *sync.RWMutex
	events *[]storedEvent
	logger Logger
}

// NewEventStore returns an empty in-memory EventStore.
func NewEventStore(options ...Option) EventStore {
	es := EventStore{
		mu:     &sync.RWMutex{},
		events: &[]storedEvent{},
	}

	for _, option := range options {
		option(&es)
	}

	return es
}

// Query returns the events matching filter in append order, and the highest matching sequence number.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range *es.events {
		if !matches(filter, stored) {
			continue
		}

		event := stored.event
		event.SequenceNumber = stored.sequenceNumber
		eventStream = append(eventStream, event)
		maxSequenceNumber = stored.sequenceNumber
	}

	if es.logger != nil {
		es.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(eventStream))
	}

	return eventStream, maxSequenceNumber, nil
}

// Append stores events if the max sequence number of the filtered stream still equals
// expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events ...eventstore.StorableEvent,
) error {

	if len(events) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	toStore := make([]storedEvent, 0, len(events))
	for _, event := range events {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
			return eventstore.ErrAppendingEventFailed
		}

		toStore = append(toStore, storedEvent{event: event, payload: payload})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actual := eventstore.MaxSequenceNumberUint(0)
	for _, stored := range *es.events {
		if matches(filter, stored) {
			actual = stored.sequenceNumber
		}
	}

	if actual != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Info(logMsgConcurrencyConflict, logAttrExpectedSequence, expectedMaxSequenceNumber, logAttrActualSequence, actual)
		}

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(*es.events))
	for i := range toStore {
		next++
		toStore[i].sequenceNumber = next
	}

	*es.events = append(*es.events, toStore...)

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(toStore))
	}

	return nil
}

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !containsEventType(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	for _, predicate := range item.Predicates() {
		hit := matchesPredicate(predicate, stored.payload)

		if item.AllPredicatesMustMatch() && !hit {
			return false
		}

		if !item.AllPredicatesMustMatch() && hit {
			return true
		}
	}

	return item.AllPredicatesMustMatch()
}

func containsEventType(eventTypes []string, eventType string) bool {
	for _, candidate := range eventTypes {
		if candidate == eventType {
			return true
		}
	}

	return false
}

// matchesPredicate mirrors JSONB containment of {"key": "value"} for top level string values.
func matchesPredicate(predicate eventstore.FilterPredicate, payload map[string]any) bool {
	value, ok := payload[predicate.Key()].(string)

	return ok && value == predicate.Val()
}
