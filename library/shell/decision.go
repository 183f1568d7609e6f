package shell

import (
	"context"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

// LoadHistory queries the filtered event stream and maps it to domain events.
// The returned max sequence number is the expected value for a later AppendDecision.
func LoadHistory(
	ctx context.Context,
	eventStore QueriesEvents,
	filter eventstore.Filter,
) (core.DomainEvents, eventstore.MaxSequenceNumberUint, error) {

	storableEvents, maxSequenceNumber, err := eventStore.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, 0, err
	}

	return history, maxSequenceNumber, nil
}

// AppendDecision appends the events of a decision, if any, within the same consistency boundary
// that was used to load the history. It returns the business error carried by the decision.
func AppendDecision(
	ctx context.Context,
	eventStore EventStore,
	filter eventstore.Filter,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	result core.DecisionResult,
) error {

	if !result.HasEventsToAppend() {
		return result.HasError()
	}

	storableEvents, err := StorableEventsFrom(result.Events, BuildEventMetadataFor(ctx))
	if err != nil {
		return err
	}

	if err = eventStore.Append(ctx, filter, maxSequenceNumber, storableEvents...); err != nil {
		return err
	}

	return result.HasError()
}

// ResultFor maps the decision and the retry metrics to a HandlerResult.
func ResultFor(result core.DecisionResult, retryMetrics RetryMetrics, err error) HandlerResult {
	if err != nil {
		return NewErrorResult(retryMetrics)
	}

	if result.IsIdempotent() {
		return NewIdempotentResult(retryMetrics)
	}

	return NewSuccessResult(retryMetrics)
}
