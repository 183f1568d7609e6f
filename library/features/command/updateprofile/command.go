package updateprofile

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "UpdateProfile"
)

// Command represents the intent to replace the profile of a user.
type Command struct {
	UserID     core.UserIDString
	Profile    core.Profile
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID core.UserIDString, profile core.Profile, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		Profile:    profile,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
