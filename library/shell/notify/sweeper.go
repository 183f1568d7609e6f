package notify

import (
	"context"
	"time"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

const (
	logMsgSweepFailed = "notify: sweeping expired holds failed"
	logAttrReadyCount = "ready_count"
	logMsgSweepReady  = "notify: holds passed on after expiry"
)

// Sweeper notices holds that became ready because an earlier hold expired.
// No command runs at that instant, so nothing else tells the next reader.
type Sweeper struct {
	eventStore shell.QueriesEvents
	notifier   Notifier
	policy     core.Policy
	interval   time.Duration
	clock      func() time.Time
	logger     Logger

	notified map[core.ReservationIDString]struct{}
	since    time.Time
}

// SweepOption configures a Sweeper.
type SweepOption func(*Sweeper)

// WithSweepClock replaces time.Now.
func WithSweepClock(clock func() time.Time) SweepOption {
	return func(s *Sweeper) {
		s.clock = clock
	}
}

// WithSweepLogger logs sweep failures and the number of notices per sweep.
func WithSweepLogger(logger Logger) SweepOption {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// NewSweeper returns a Sweeper that runs every interval.
func NewSweeper(
	eventStore shell.QueriesEvents,
	notifier Notifier,
	policy core.Policy,
	interval time.Duration,
	opts ...SweepOption,
) *Sweeper {

	s := &Sweeper{
		eventStore: eventStore,
		notifier:   notifier,
		policy:     policy,
		interval:   interval,
		clock:      time.Now,
		notified:   make(map[core.ReservationIDString]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run sweeps every interval until ctx is done. Failed sweeps are logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil && ctx.Err() == nil && s.logger != nil {
				s.logger.Error(logMsgSweepFailed, logAttrError, err.Error())
			}
		}
	}
}

// Sweep notifies each reader whose hold was passed on after an expiry, once per reservation.
// The first sweep only looks back one interval, so a restart does not repeat older notices.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.clock()
	if s.since.IsZero() {
		s.since = now.Add(-s.interval)
	}

	eventTypes := core.CirculationEventTypes()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()

	history, _, err := shell.LoadHistory(ctx, s.eventStore, filter)
	if err != nil {
		return err
	}

	byBook := make(map[core.BookIDString]core.DomainEvents)
	var bookIDs []core.BookIDString
	for _, event := range history {
		bookID, ok := core.BookIDOf(event)
		if !ok {
			continue
		}

		if _, seen := byBook[bookID]; !seen {
			bookIDs = append(bookIDs, bookID)
		}

		byBook[bookID] = append(byBook[bookID], event)
	}

	stillHeld := make(map[core.ReservationIDString]struct{}, len(s.notified))
	sent := 0

	for _, bookID := range bookIDs {
		c := core.ProjectCirculation(byBook[bookID], bookID, now, s.policy)

		var ready []core.Reservation
		for _, r := range c.Held {
			if !r.PromotedOnExpiry {
				continue
			}

			if _, done := s.notified[r.ReservationID]; done {
				stillHeld[r.ReservationID] = struct{}{}
				continue
			}

			if r.ReadyAt.Before(s.since) {
				continue
			}

			ready = append(ready, *r)
		}

		if err = NotifyReaders(ctx, s.eventStore, s.notifier, c.Title, ready); err != nil {
			return err
		}

		for _, r := range ready {
			stillHeld[r.ReservationID] = struct{}{}
		}

		sent += len(ready)
	}

	s.notified = stillHeld

	if sent > 0 && s.logger != nil {
		s.logger.Info(logMsgSweepReady, logAttrReadyCount, sent)
	}

	return nil
}
