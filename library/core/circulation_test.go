package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

var t0 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func hours(n int) time.Duration {
	return time.Duration(n) * time.Hour
}

func givenBook(bookID string, copies int, at time.Time) core.DomainEvent {
	return core.BuildBookAddedToCatalog(bookID, "978-0-00-000000-0", "Cien años de soledad", []string{"Gabriel García Márquez"}, []string{"Novela"}, copies, at)
}

func givenLoan(loanID string, readerID string, bookID string, at time.Time) core.DomainEvent {
	return core.BuildLoanStarted(loanID, "q-"+loanID, readerID, bookID, at.Add(15*24*time.Hour), at)
}

func Test_ProjectCirculation_CountsFreeCopies(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook("b-1", 3, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		givenLoan("l-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", t0.Add(hours(3))),
		givenBook("b-2", 7, t0), // other book
	}

	// act
	c := core.ProjectCirculation(history, "b-1", t0.Add(hours(4)), core.DefaultPolicy())

	// assert
	assert.True(t, c.InCatalog)
	assert.Equal(t, 3, c.Copies)
	assert.Len(t, c.ActiveLoans, 1)
	assert.Equal(t, 2, c.FreeCopies())
	assert.True(t, c.HasActiveLoanOf("r-2"))
	assert.False(t, c.HasActiveLoanOf("r-1"))
}

func Test_ProjectCirculation_ReturnMakesHeadOfQueueReady(t *testing.T) {
	// arrange
	policy := core.DefaultPolicy()
	returnedAt := t0.Add(hours(10))
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildReservationPlaced("res-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildReservationPlaced("res-3", "r-3", "b-1", t0.Add(hours(3))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", returnedAt),
	}

	// act
	c := core.ProjectCirculation(history, "b-1", returnedAt.Add(hours(1)), policy)

	// assert
	first := c.Reservations["res-2"]
	assert.Equal(t, core.ReservationStatusReady, first.Status)
	assert.Equal(t, returnedAt, first.ReadyAt)
	assert.Equal(t, returnedAt.Add(policy.PickupWindow), first.ExpiresAt)
	assert.False(t, first.PromotedOnExpiry)
	assert.Equal(t, core.ReservationStatusWaiting, c.Reservations["res-3"].Status)
	assert.Equal(t, 0, c.FreeCopies())

	position, total := c.QueuePosition("res-3")
	assert.Equal(t, 1, position)
	assert.Equal(t, 1, total)
}

func Test_ProjectCirculation_ExpiredHoldPassesCopyOn_AtExpiryInstant(t *testing.T) {
	// arrange
	policy := core.DefaultPolicy()
	returnedAt := t0.Add(hours(10))
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildReservationPlaced("res-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildReservationPlaced("res-3", "r-3", "b-1", t0.Add(hours(3))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", returnedAt),
	}
	firstExpiry := returnedAt.Add(policy.PickupWindow)

	// act
	c := core.ProjectCirculation(history, "b-1", firstExpiry.Add(hours(1)), policy)

	// assert
	assert.Equal(t, core.ReservationStatusExpired, c.Reservations["res-2"].Status)
	assert.Equal(t, firstExpiry, c.Reservations["res-2"].ClosedAt)
	second := c.Reservations["res-3"]
	assert.Equal(t, core.ReservationStatusReady, second.Status)
	assert.Equal(t, firstExpiry, second.ReadyAt)
	assert.Equal(t, firstExpiry.Add(policy.PickupWindow), second.ExpiresAt)
	assert.True(t, second.PromotedOnExpiry)
}

func Test_ProjectCirculation_AllHoldsExpire_CopyBecomesFree(t *testing.T) {
	policy := core.DefaultPolicy()
	returnedAt := t0.Add(hours(10))
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildReservationPlaced("res-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", returnedAt),
	}

	c := core.ProjectCirculation(history, "b-1", returnedAt.Add(30*24*time.Hour), policy)

	assert.Equal(t, core.ReservationStatusExpired, c.Reservations["res-2"].Status)
	assert.Equal(t, 1, c.FreeCopies())
	assert.Empty(t, c.Held)
}

func Test_ProjectCirculation_LoanByHolder_CompletesReservation(t *testing.T) {
	// arrange
	returnedAt := t0.Add(hours(10))
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildReservationPlaced("res-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", returnedAt),
		givenLoan("l-2", "r-2", "b-1", returnedAt.Add(hours(5))),
	}

	// act
	c := core.ProjectCirculation(history, "b-1", returnedAt.Add(hours(6)), core.DefaultPolicy())

	// assert
	assert.Equal(t, core.ReservationStatusCompleted, c.Reservations["res-2"].Status)
	assert.Empty(t, c.Held)
	assert.Len(t, c.ActiveLoans, 1)
	assert.Equal(t, 0, c.FreeCopies())
}

func Test_ProjectCirculation_CancelReleasesHold(t *testing.T) {
	returnedAt := t0.Add(hours(10))
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildReservationPlaced("res-2", "r-2", "b-1", t0.Add(hours(2))),
		core.BuildReservationPlaced("res-3", "r-3", "b-1", t0.Add(hours(3))),
		core.BuildBookReturned("l-1", "r-1", "b-1", "lib-1", returnedAt),
		core.BuildReservationCanceled("res-2", "r-2", "b-1", returnedAt.Add(hours(1))),
	}

	c := core.ProjectCirculation(history, "b-1", returnedAt.Add(hours(2)), core.DefaultPolicy())

	assert.Equal(t, core.ReservationStatusCanceled, c.Reservations["res-2"].Status)
	assert.Equal(t, core.ReservationStatusReady, c.Reservations["res-3"].Status)
	assert.Equal(t, returnedAt.Add(hours(1)), c.Reservations["res-3"].ReadyAt)
}

func Test_ProjectCirculation_AddingCopies_PromotesQueue(t *testing.T) {
	history := core.DomainEvents{
		givenBook("b-1", 0, t0),
		core.BuildReservationPlaced("res-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildBookCopiesAdjusted("b-1", 2, t0.Add(hours(2))),
	}

	c := core.ProjectCirculation(history, "b-1", t0.Add(hours(3)), core.DefaultPolicy())

	assert.Equal(t, core.ReservationStatusReady, c.Reservations["res-1"].Status)
	assert.Equal(t, 1, c.FreeCopies())
}

func Test_ProjectCirculation_RemovingBook_CancelsActiveReservations(t *testing.T) {
	history := core.DomainEvents{
		givenBook("b-1", 0, t0),
		core.BuildReservationPlaced("res-1", "r-1", "b-1", t0.Add(hours(1))),
		core.BuildBookRemovedFromCatalog("b-1", "978-0-00-000000-0", t0.Add(hours(2))),
	}

	c := core.ProjectCirculation(history, "b-1", t0.Add(hours(3)), core.DefaultPolicy())

	assert.True(t, c.Removed)
	assert.False(t, c.InCatalog)
	assert.Equal(t, core.ReservationStatusCanceled, c.Reservations["res-1"].Status)
	assert.Empty(t, c.Queue)
}
