package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/cancelreservation"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

var t0 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func Test_Decide(t *testing.T) {
	policy := core.DefaultPolicy()
	bookID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	reservationID := GivenUniqueID(t)
	lentOut := core.DomainEvents{
		FixtureBookAdded(bookID, 1, t0),
		FixtureLoanStarted(GivenUniqueID(t), GivenUniqueID(t), bookID, t0.Add(time.Hour), policy),
	}
	placed := FixtureReservationPlaced(reservationID, readerID, bookID, t0.Add(2*time.Hour))
	free := core.DomainEvents{FixtureBookAdded(bookID, 1, t0)}

	tests := []struct {
		name        string
		history     core.DomainEvents
		readerID    string
		at          time.Time
		expectedErr error
		idempotent  bool
	}{
		{name: "waiting reservation", history: append(lentOut, placed), readerID: readerID, at: t0.Add(3 * time.Hour)},
		{name: "ready reservation", history: append(free, placed), readerID: readerID, at: t0.Add(3 * time.Hour)},
		{name: "unknown reservation", history: lentOut, readerID: readerID, at: t0.Add(3 * time.Hour), expectedErr: core.ErrNotFound},
		{name: "reservation of another reader", history: append(lentOut, placed), readerID: GivenUniqueID(t), at: t0.Add(3 * time.Hour), expectedErr: core.ErrNotFound},
		{
			name:        "expired reservation",
			history:     append(free, placed),
			readerID:    readerID,
			at:          t0.Add(2*time.Hour + policy.PickupWindow),
			expectedErr: core.ErrInvalidState,
		},
		{
			name: "completed reservation",
			history: append(free, placed,
				FixtureLoanStarted(GivenUniqueID(t), readerID, bookID, t0.Add(3*time.Hour), policy),
			),
			readerID:    readerID,
			at:          t0.Add(4 * time.Hour),
			expectedErr: core.ErrInvalidState,
		},
		{
			name:       "canceled reservation",
			history:    append(free, placed, core.BuildReservationCanceled(reservationID, readerID, bookID, t0.Add(3*time.Hour))),
			readerID:   readerID,
			at:         t0.Add(4 * time.Hour),
			idempotent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cancelreservation.Decide(tt.history, cancelreservation.BuildCommand(reservationID, tt.readerID, tt.at), policy)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tt.expectedErr)
				return
			}

			assert.NoError(t, result.HasError())
			assert.Equal(t, tt.idempotent, result.IsIdempotent())
			if !tt.idempotent {
				assert.IsType(t, core.ReservationCanceled{}, result.Events[0])
			}
		})
	}
}
