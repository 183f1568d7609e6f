package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

func Test_StorableEventFrom_And_DomainEventFrom_KeepEventIntact(t *testing.T) {
	// arrange
	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	started := core.BuildLoanStarted("loan-1", "req-1", "reader-1", "book-1", now.Add(15*24*time.Hour), now)
	metadata := shell.BuildEventMetadataFor(context.Background())

	// act
	storableEvent, err := shell.StorableEventFrom(started, metadata)
	require.NoError(t, err)

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.LoanStartedEventType, storableEvent.EventType)
	assert.Equal(t, started, domainEvent)
	assert.JSONEq(t, `"reader-1"`, jsonField(t, storableEvent.PayloadJSON, "ReaderID"))

	restoredMetadata, err := shell.EventMetadataFrom(storableEvent)
	require.NoError(t, err)
	assert.Equal(t, metadata, restoredMetadata)
}

func Test_StorableEventFrom_FlattensEmbeddedProfile(t *testing.T) {
	// arrange
	registered := core.BuildUserRegistered(
		"user-1",
		" Ana@Example.org ",
		"hash",
		core.RoleReader,
		core.Profile{FirstName: "Ana", PaternalSurname: "Ruiz"},
		time.Now(),
	)

	// act
	storableEvent, err := shell.StorableEventFrom(registered, shell.EventMetadata{})
	require.NoError(t, err)

	// assert
	assert.JSONEq(t, `"ana@example.org"`, jsonField(t, storableEvent.PayloadJSON, "Email"))
	assert.JSONEq(t, `"Ana"`, jsonField(t, storableEvent.PayloadJSON, "FirstName"))

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)
	assert.Equal(t, registered, domainEvent)
}

func Test_DomainEventFrom_KeepsErrorEventFlag(t *testing.T) {
	failed := core.BuildRenewingLoanFailed("loan-1", "reader-1", "max renewals reached", time.Now())

	storableEvent, err := shell.StorableEventFrom(failed, shell.EventMetadata{})
	require.NoError(t, err)

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)
	assert.True(t, domainEvent.IsErrorEvent())
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("SomethingElse", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	_, err = shell.DomainEventFrom(storableEvent)

	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_BuildEventMetadataFor_UsesCorrelationIDFromContext(t *testing.T) {
	ctx := shell.WithCorrelationID(context.Background(), "request-42")

	metadata := shell.BuildEventMetadataFor(ctx)

	assert.Equal(t, "request-42", metadata.CorrelationID)
	assert.Equal(t, "request-42", metadata.CausationID)
	assert.NotEqual(t, "request-42", metadata.MessageID)
}

func jsonField(t *testing.T, payload []byte, key string) string {
	t.Helper()

	var fields map[string]any
	require.NoError(t, jsoniterUnmarshal(payload, &fields))

	encoded, err := jsoniterMarshal(fields[key])
	require.NoError(t, err)

	return string(encoded)
}
