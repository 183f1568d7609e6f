package returnbook

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents a librarian receiving a lent copy back.
type Command struct {
	LoanID     core.LoanIDString
	ReceivedBy core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, receivedBy core.UserIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ReceivedBy: receivedBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
