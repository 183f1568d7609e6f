package cancelreservation

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent of a reader to leave the queue of a book.
type Command struct {
	ReservationID core.ReservationIDString
	ReaderID      core.UserIDString
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID core.ReservationIDString, readerID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		ReaderID:      readerID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
