package core

import (
	"slices"
	"time"
)

// Reservation states.
const (
	ReservationStatusWaiting   = "en_espera"
	ReservationStatusReady     = "disponible"
	ReservationStatusCompleted = "completada"
	ReservationStatusExpired   = "expirada"
	ReservationStatusCanceled  = "cancelada"
)

// CirculationEventTypes are the event types that change the circulation of a book. All of them carry a BookID.
func CirculationEventTypes() []string {
	return []string{
		BookAddedToCatalogEventType,
		BookCopiesAdjustedEventType,
		BookRemovedFromCatalogEventType,
		LoanStartedEventType,
		BookReturnedEventType,
		ReservationPlacedEventType,
		ReservationCanceledEventType,
	}
}

// Reservation is the projected state of one reservation.
type Reservation struct {
	ReservationID ReservationIDString
	ReaderID      UserIDString
	BookID        BookIDString
	Status        string
	PlacedAt      time.Time
	ReadyAt       time.Time // zero while waiting
	ExpiresAt     time.Time // zero while waiting
	ClosedAt      time.Time // set for completed, expired and canceled

	// PromotedOnExpiry is true if the copy was passed on because an earlier hold expired,
	// so no event marks the moment it became ready.
	PromotedOnExpiry bool
}

// IsActive is true for waiting and ready reservations.
func (r Reservation) IsActive() bool {
	return r.Status == ReservationStatusWaiting || r.Status == ReservationStatusReady
}

// ActiveLoan is a loan of the book that was not returned yet.
type ActiveLoan struct {
	LoanID    LoanIDString
	RequestID RequestIDString
	ReaderID  UserIDString
	StartedAt time.Time
	DueAt     time.Time
}

// Circulation is the state of one book: copies, loans and the reservation queue.
type Circulation struct {
	BookID       BookIDString
	ISBN         ISBNString
	Title        string
	Authors      []string
	Genres       []string
	InCatalog    bool
	Removed      bool
	Copies       int
	ActiveLoans  []ActiveLoan
	Queue        []*Reservation // waiting, FIFO
	Held         []*Reservation // ready for pickup, each holds one copy
	Reservations map[ReservationIDString]*Reservation

	pickupWindow time.Duration
}

// FreeCopies is the number of copies that are neither lent nor held for a reservation.
func (c Circulation) FreeCopies() int {
	return c.Copies - len(c.ActiveLoans) - len(c.Held)
}

// AvailableCopies is FreeCopies, never negative.
func (c Circulation) AvailableCopies() int {
	return max(c.FreeCopies(), 0)
}

// HeldFor returns the ready reservation of readerID, if any.
func (c Circulation) HeldFor(readerID UserIDString) (*Reservation, bool) {
	for _, r := range c.Held {
		if r.ReaderID == readerID {
			return r, true
		}
	}

	return nil, false
}

// ActiveReservationOf returns the waiting or ready reservation of readerID, if any.
func (c Circulation) ActiveReservationOf(readerID UserIDString) (*Reservation, bool) {
	if r, ok := c.HeldFor(readerID); ok {
		return r, true
	}

	for _, r := range c.Queue {
		if r.ReaderID == readerID {
			return r, true
		}
	}

	return nil, false
}

// HasActiveLoanOf is true if readerID currently has a copy of the book.
func (c Circulation) HasActiveLoanOf(readerID UserIDString) bool {
	return slices.ContainsFunc(c.ActiveLoans, func(l ActiveLoan) bool {
		return l.ReaderID == readerID
	})
}

// QueuePosition returns the 1-based position of a waiting reservation and the queue length.
// Ready reservations have position 0.
func (c Circulation) QueuePosition(reservationID ReservationIDString) (position int, total int) {
	for i, r := range c.Queue {
		if r.ReservationID == reservationID {
			return i + 1, len(c.Queue)
		}
	}

	return 0, len(c.Queue)
}

// ProjectCirculation replays the history of bookID up to now. Events of other books are ignored,
// so the history may span several books.
//
// Rules:
//   - A copy is free if it is neither lent nor held for a ready reservation.
//   - Whenever copies are free, the head of the queue becomes ready at that instant and is held
//     for the pickup window. An expired hold releases its copy to the next in the queue, ready at
//     the instant of expiry.
//   - A loan started by a reader with an active reservation completes that reservation.
//   - Canceled reservations leave the queue or release their hold.
//   - Removing the book from the catalog cancels all active reservations.
func ProjectCirculation(history DomainEvents, bookID BookIDString, now time.Time, policy Policy) Circulation {
	c := Circulation{
		BookID:       bookID,
		Reservations: make(map[ReservationIDString]*Reservation),
		pickupWindow: policy.PickupWindow,
	}

	for _, event := range history {
		if id, ok := BookIDOf(event); !ok || id != bookID {
			continue
		}

		at := event.HasOccurredAt()
		c.expireHolds(at)
		c.apply(event, at)
		c.promote(at, false)
	}

	c.expireHolds(now)

	return c
}

// BookIDOf returns the book an event belongs to, for the event types that have one.
func BookIDOf(event DomainEvent) (BookIDString, bool) {
	switch e := event.(type) {
	case BookAddedToCatalog:
		return e.BookID, true
	case BookCopiesAdjusted:
		return e.BookID, true
	case BookRemovedFromCatalog:
		return e.BookID, true
	case LoanStarted:
		return e.BookID, true
	case LoanRenewed:
		return e.BookID, true
	case BookReturned:
		return e.BookID, true
	case FineAssessed:
		return e.BookID, true
	case ReservationPlaced:
		return e.BookID, true
	case ReservationCanceled:
		return e.BookID, true
	default:
		return "", false
	}
}

func (c *Circulation) apply(event DomainEvent, at time.Time) {
	switch e := event.(type) {
	case BookAddedToCatalog:
		c.InCatalog = true
		c.Removed = false
		c.ISBN = e.ISBN
		c.Title = e.Title
		c.Authors = e.Authors
		c.Genres = e.Genres
		c.Copies = e.Copies

	case BookCopiesAdjusted:
		c.Copies = e.Copies

	case BookRemovedFromCatalog:
		c.InCatalog = false
		c.Removed = true

		for _, r := range slices.Concat(c.Held, c.Queue) {
			r.Status = ReservationStatusCanceled
			r.ClosedAt = at
		}
		c.Held = nil
		c.Queue = nil

	case LoanStarted:
		c.ActiveLoans = append(c.ActiveLoans, ActiveLoan{
			LoanID:    e.LoanID,
			RequestID: e.RequestID,
			ReaderID:  e.ReaderID,
			StartedAt: e.OccurredAt,
			DueAt:     e.DueAt,
		})

		if r, ok := c.ActiveReservationOf(e.ReaderID); ok {
			r.Status = ReservationStatusCompleted
			r.ClosedAt = at
			c.detach(r.ReservationID)
		}

	case BookReturned:
		c.ActiveLoans = slices.DeleteFunc(c.ActiveLoans, func(l ActiveLoan) bool {
			return l.LoanID == e.LoanID
		})

	case LoanRenewed:
		for i := range c.ActiveLoans {
			if c.ActiveLoans[i].LoanID == e.LoanID {
				c.ActiveLoans[i].DueAt = e.DueAt
			}
		}

	case ReservationPlaced:
		if _, exists := c.Reservations[e.ReservationID]; exists {
			return
		}

		r := &Reservation{
			ReservationID: e.ReservationID,
			ReaderID:      e.ReaderID,
			BookID:        e.BookID,
			Status:        ReservationStatusWaiting,
			PlacedAt:      e.OccurredAt,
		}
		c.Reservations[e.ReservationID] = r
		c.Queue = append(c.Queue, r)

	case ReservationCanceled:
		r, ok := c.Reservations[e.ReservationID]
		if !ok || !r.IsActive() {
			return
		}

		r.Status = ReservationStatusCanceled
		r.ClosedAt = at
		c.detach(r.ReservationID)
	}
}

// detach removes a reservation from the queue and the held list.
func (c *Circulation) detach(reservationID ReservationIDString) {
	match := func(r *Reservation) bool {
		return r.ReservationID == reservationID
	}

	c.Queue = slices.DeleteFunc(c.Queue, match)
	c.Held = slices.DeleteFunc(c.Held, match)
}

// promote makes waiting reservations ready while there are free copies.
func (c *Circulation) promote(at time.Time, onExpiry bool) {
	if !c.InCatalog {
		return
	}

	for c.FreeCopies() > 0 && len(c.Queue) > 0 {
		r := c.Queue[0]
		c.Queue = c.Queue[1:]

		r.Status = ReservationStatusReady
		r.ReadyAt = at
		r.ExpiresAt = at.Add(c.pickupWindow)
		r.PromotedOnExpiry = onExpiry
		c.Held = append(c.Held, r)
	}
}

// expireHolds expires every hold whose pickup window ended at or before "until", in order of expiry,
// passing each released copy on at the moment it was released.
func (c *Circulation) expireHolds(until time.Time) {
	for {
		idx := -1
		for i, r := range c.Held {
			if r.ExpiresAt.After(until) {
				continue
			}

			if idx == -1 || r.ExpiresAt.Before(c.Held[idx].ExpiresAt) {
				idx = i
			}
		}

		if idx == -1 {
			return
		}

		expired := c.Held[idx]
		expired.Status = ReservationStatusExpired
		expired.ClosedAt = expired.ExpiresAt
		c.Held = slices.Delete(c.Held, idx, idx+1)

		c.promote(expired.ExpiresAt, true)
	}
}
