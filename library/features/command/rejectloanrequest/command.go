package rejectloanrequest

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "RejectLoanRequest"
)

// Command represents the intent of a librarian to reject a pending loan request.
type Command struct {
	RequestID  core.RequestIDString
	RejectedBy core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(requestID core.RequestIDString, rejectedBy core.UserIDString, occurredAt time.Time) Command {
	return Command{
		RequestID:  requestID,
		RejectedBy: rejectedBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
