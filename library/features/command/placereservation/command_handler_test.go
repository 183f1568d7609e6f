package placereservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/placereservation"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_CountsReservationsAcrossBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	policy := core.DefaultPolicy()
	policy.MaxActiveReservations = 1
	es := GivenMemoryEventStore()
	readerID := GivenUniqueID(t)
	firstBookID := GivenUniqueID(t)
	secondBookID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es,
		FixtureBookAdded(firstBookID, 0, now.Add(-time.Hour)),
		FixtureBookAdded(secondBookID, 0, now.Add(-time.Hour)),
	)
	handler := placereservation.NewCommandHandler(es, placereservation.WithPolicy(policy))

	// act
	_, err := handler.Handle(ctx, placereservation.BuildCommand(GivenUniqueID(t), readerID, firstBookID, now))
	require.NoError(t, err)
	_, secondErr := handler.Handle(ctx, placereservation.BuildCommand(GivenUniqueID(t), readerID, secondBookID, now))

	// assert
	assert.ErrorIs(t, secondErr, core.ErrConflict)
	assert.Len(t, EventsOfType[core.ReservationPlaced](t, es), 1)
	assert.Len(t, EventsOfType[core.PlacingReservationFailed](t, es), 1)
}
