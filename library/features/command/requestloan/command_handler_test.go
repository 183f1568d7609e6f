package requestloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/requestloan"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_RecordsRequestAndFailure(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	es := GivenMemoryEventStore()
	readerID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(readerID, "lector@biblioteca.test", now.Add(-time.Hour)),
		FixtureBookAdded(bookID, 1, now.Add(-time.Hour)),
	)
	handler := requestloan.NewCommandHandler(es)

	// act
	_, err := handler.Handle(ctx, requestloan.BuildCommand(GivenUniqueID(t), readerID, []string{bookID}, now))
	require.NoError(t, err)
	_, secondErr := handler.Handle(ctx, requestloan.BuildCommand(GivenUniqueID(t), readerID, []string{bookID}, now))

	// assert
	assert.ErrorIs(t, secondErr, core.ErrConflict)
	assert.Len(t, EventsOfType[core.LoanRequested](t, es), 1)
	assert.Len(t, EventsOfType[core.RequestingLoanFailed](t, es), 1)
}
