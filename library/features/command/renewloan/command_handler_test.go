package renewloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/renewloan"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_RenewsUntilMaxReached(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	policy := core.DefaultPolicy()
	policy.MaxRenewals = 1
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	loan := FixtureLoanStarted(GivenUniqueID(t), readerID, bookID, now.Add(-time.Hour), policy)
	GivenEventsWereAppended(t, es, FixtureBookAdded(bookID, 1, now.Add(-2*time.Hour)), loan)
	handler := renewloan.NewCommandHandler(es, renewloan.WithPolicy(policy))

	// act
	_, err := handler.Handle(ctx, renewloan.BuildCommand(loan.LoanID, readerID, now))
	require.NoError(t, err)
	_, secondErr := handler.Handle(ctx, renewloan.BuildCommand(loan.LoanID, readerID, now.Add(time.Minute)))

	// assert
	assert.ErrorIs(t, secondErr, core.ErrInvalidState)
	assert.Len(t, EventsOfType[core.LoanRenewed](t, es), 1)
	assert.Len(t, EventsOfType[core.RenewingLoanFailed](t, es), 1)
}
