package renewloan

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "RenewLoan"
)

// Command represents the intent of a reader to renew one of their loans.
type Command struct {
	LoanID     core.LoanIDString
	ReaderID   core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, readerID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ReaderID:   readerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
