package changeuserrole

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "ChangeUserRole"
)

// Command represents an administrator assigning a role to a user.
type Command struct {
	UserID     core.UserIDString
	Role       core.RoleString
	ChangedBy  core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID core.UserIDString, role core.RoleString, changedBy core.UserIDString, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		Role:       role,
		ChangedBy:  changedBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
