package processfine

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "ProcessFine"
)

// Actions on a pending fine.
const (
	ActionPay   = "pagar"
	ActionWaive = "condonar"
)

// Command represents the intent to pay or waive a fine.
type Command struct {
	FineID      core.FineIDString
	Action      string
	ProcessedBy core.UserIDString
	ByReader    bool
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. byReader restricts the command to the reader's own fines.
func BuildCommand(
	fineID core.FineIDString,
	action string,
	processedBy core.UserIDString,
	byReader bool,
	occurredAt time.Time,
) Command {

	return Command{
		FineID:      fineID,
		Action:      strings.ToLower(strings.TrimSpace(action)),
		ProcessedBy: processedBy,
		ByReader:    byReader,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
