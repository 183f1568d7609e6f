package approveloanrequest

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "ApproveLoanRequest"
)

// Command represents the intent of a librarian to approve a pending loan request.
type Command struct {
	RequestID  core.RequestIDString
	ApprovedBy core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(requestID core.RequestIDString, approvedBy core.UserIDString, occurredAt time.Time) Command {
	return Command{
		RequestID:  requestID,
		ApprovedBy: approvedBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
