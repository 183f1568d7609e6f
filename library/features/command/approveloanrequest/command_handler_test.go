package approveloanrequest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/approveloanrequest"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_ApprovesOnlyOneOfTwoRequestsForTheLastCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	firstRequestID := GivenUniqueID(t)
	secondRequestID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es,
		FixtureBookAdded(bookID, 1, now.Add(-time.Hour)),
		FixtureLoanRequested(firstRequestID, GivenUniqueID(t), now.Add(-time.Hour), bookID),
		FixtureLoanRequested(secondRequestID, GivenUniqueID(t), now.Add(-time.Hour), bookID),
	)
	handler := approveloanrequest.NewCommandHandler(es)

	// act
	first, err := handler.Handle(ctx, approveloanrequest.BuildCommand(firstRequestID, GivenUniqueID(t), now))
	require.NoError(t, err)
	_, secondErr := handler.Handle(ctx, approveloanrequest.BuildCommand(secondRequestID, GivenUniqueID(t), now))

	// assert
	assert.False(t, first.Idempotent)
	assert.ErrorIs(t, secondErr, core.ErrConflict)
	assert.Len(t, EventsOfType[core.LoanStarted](t, es), 1)
	assert.Len(t, EventsOfType[core.ApprovingLoanRequestFailed](t, es), 1)
}
