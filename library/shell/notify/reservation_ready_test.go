package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

type notifierSpy struct {
	notices []notify.ReservationReadyNotice
}

func (n *notifierSpy) NotifyReservationReady(_ context.Context, notice notify.ReservationReadyNotice) {
	n.notices = append(n.notices, notice)
}

func Test_NewlyReady_And_NotifyReaders_AfterReturn(t *testing.T) {
	// arrange
	policy := core.DefaultPolicy()
	now := time.Now()
	bookID := GivenUniqueID(t)
	borrowerID := GivenUniqueID(t)
	waitingID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	started := FixtureLoanStarted(requestID, borrowerID, bookID, now.Add(-4*time.Hour), policy)

	history := core.DomainEvents{
		FixtureBookAdded(bookID, 1, now.Add(-5*time.Hour)),
		started,
		FixtureReservationPlaced(GivenUniqueID(t), waitingID, bookID, now.Add(-3*time.Hour)),
	}
	returned := core.DomainEvents{core.BuildBookReturned(started.LoanID, borrowerID, bookID, GivenUniqueID(t), now)}

	es := GivenMemoryEventStore()
	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(waitingID, "eva@example.org", now.Add(-6*time.Hour)),
		core.BuildUserProfileUpdated(waitingID, core.Profile{FirstName: "Eva", PaternalSurname: "Luna"}, now.Add(-6*time.Hour)),
	)
	spy := &notifierSpy{}

	// act
	ready := notify.NewlyReady(history, returned, bookID, now, policy)
	err := notify.NotifyReaders(context.Background(), es, spy, "Rayuela", ready)

	// assert
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, waitingID, ready[0].ReaderID)
	require.Len(t, spy.notices, 1)
	assert.Equal(t, "eva@example.org", spy.notices[0].Email)
	assert.Equal(t, "Eva Luna", spy.notices[0].Name)
	assert.Equal(t, now.Add(policy.PickupWindow).UTC().Truncate(time.Microsecond), spy.notices[0].ExpiresAt)
}

func Test_NewlyReady_IgnoresHoldsThatWereAlreadyReady(t *testing.T) {
	policy := core.DefaultPolicy()
	now := time.Now()
	bookID := GivenUniqueID(t)

	history := core.DomainEvents{
		FixtureBookAdded(bookID, 1, now.Add(-5*time.Hour)),
		FixtureReservationPlaced(GivenUniqueID(t), GivenUniqueID(t), bookID, now.Add(-4*time.Hour)),
	}
	adjusted := core.DomainEvents{core.BuildBookCopiesAdjusted(bookID, 2, now)}

	assert.Empty(t, notify.NewlyReady(history, adjusted, bookID, now, policy))
}
