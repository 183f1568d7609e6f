package adjustbookcopies_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/adjustbookcopies"
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

func Test_CommandHandler_Handle_NotifiesReaderWhoseReservationBecameReady(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	policy := core.DefaultPolicy()
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	lenderID := GivenUniqueID(t)
	waitingID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(waitingID, "espera@biblioteca.test", now.Add(-3*time.Hour)),
		FixtureBookAdded(bookID, 1, now.Add(-3*time.Hour)),
		FixtureLoanStarted(GivenUniqueID(t), lenderID, bookID, now.Add(-2*time.Hour), policy),
		FixtureReservationPlaced(GivenUniqueID(t), waitingID, bookID, now.Add(-time.Hour)),
	)
	spy := &notifierSpy{}
	handler := adjustbookcopies.NewCommandHandler(es, adjustbookcopies.WithPolicy(policy), adjustbookcopies.WithNotifier(spy, nil))

	// act
	_, err := handler.Handle(ctx, adjustbookcopies.BuildCommand(bookID, 2, now))

	// assert
	require.NoError(t, err)
	require.Len(t, spy.notices, 1)
	assert.Equal(t, waitingID, spy.notices[0].ReaderID)
	assert.Equal(t, "espera@biblioteca.test", spy.notices[0].Email)
	assert.Equal(t, "Cien años de soledad", spy.notices[0].BookTitle)
	assert.Len(t, EventsOfType[core.BookCopiesAdjusted](t, es), 1)
}

func Test_CommandHandler_Handle_IdempotentDoesNotNotify(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := GivenMemoryEventStore()
	bookID := GivenUniqueID(t)
	GivenEventsWereAppended(t, es, FixtureBookAdded(bookID, 1, time.Now().Add(-time.Hour)))
	spy := &notifierSpy{}
	handler := adjustbookcopies.NewCommandHandler(es, adjustbookcopies.WithNotifier(spy, nil))

	// act
	result, err := handler.Handle(ctx, adjustbookcopies.BuildCommand(bookID, 1, time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, spy.notices)
}
