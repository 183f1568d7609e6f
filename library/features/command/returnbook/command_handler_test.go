package returnbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/returnbook"
	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

type notifierSpy struct {
	mu      sync.Mutex
	notices []notify.ReservationReadyNotice
}

func (n *notifierSpy) NotifyReservationReady(_ context.Context, notice notify.ReservationReadyNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices = append(n.notices, notice)
}

func Test_CommandHandler_Handle_LateReturnAssessesFineAndNotifiesNextReader(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	policy := core.DefaultPolicy()
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	lenderID := GivenUniqueID(t)
	waitingID := GivenUniqueID(t)
	startedAt := now.Add(-policy.LoanPeriod - 24*time.Hour - time.Minute)
	loan := FixtureLoanStarted(GivenUniqueID(t), lenderID, bookID, startedAt, policy)
	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(waitingID, "espera@biblioteca.test", startedAt),
		FixtureBookAdded(bookID, 1, startedAt.Add(-time.Hour)),
		loan,
		FixtureReservationPlaced(GivenUniqueID(t), waitingID, bookID, startedAt.Add(time.Hour)),
	)
	spy := &notifierSpy{}
	handler := returnbook.NewCommandHandler(es, returnbook.WithPolicy(policy), returnbook.WithNotifier(spy, nil))

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loan.LoanID, GivenUniqueID(t), now))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	fines := EventsOfType[core.FineAssessed](t, es)
	require.Len(t, fines, 1)
	assert.Equal(t, 2, fines[0].DaysOverdue)

	require.Len(t, spy.notices, 1)
	assert.Equal(t, waitingID, spy.notices[0].ReaderID)
}

func Test_CommandHandler_Handle_UnknownLoan(t *testing.T) {
	es := GivenMemoryEventStore()

	_, err := returnbook.NewCommandHandler(es).Handle(context.Background(), returnbook.BuildCommand(GivenUniqueID(t), "", time.Now()))

	assert.ErrorIs(t, err, core.ErrNotFound)
}
