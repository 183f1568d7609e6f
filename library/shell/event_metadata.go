package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

type (
	MessageID     = string
	CausationID   = string
	CorrelationID = string
)

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

type correlationKey struct{}

// WithCorrelationID stores the id of the request that causes the events appended under ctx.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// BuildEventMetadataFor builds metadata with a fresh message id. Causation and correlation
// point to the correlation id in ctx, or to the message itself if there is none.
func BuildEventMetadataFor(ctx context.Context) EventMetadata {
	messageID := uuid.New().String()

	correlationID, ok := ctx.Value(correlationKey{}).(string)
	if !ok || correlationID == "" {
		correlationID = messageID
	}

	return EventMetadata{
		MessageID:     messageID,
		CausationID:   correlationID,
		CorrelationID: correlationID,
	}
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
