package removebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/removebook"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_RemovesBookAndCancelsQueue(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es,
		FixtureBookAdded(bookID, 0, now.Add(-2*time.Hour)),
		FixtureReservationPlaced(GivenUniqueID(t), readerID, bookID, now.Add(-time.Hour)),
	)

	// act
	result, err := removebook.NewCommandHandler(es).Handle(ctx, removebook.BuildCommand(bookID, now))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	c := core.ProjectCirculation(AllEvents(t, es), bookID, now, core.DefaultPolicy())
	assert.True(t, c.Removed)
	assert.Empty(t, c.Queue)
}
