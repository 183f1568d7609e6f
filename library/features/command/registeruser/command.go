package registeruser

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to register a user. Password is the plain password, it never leaves the handler.
type Command struct {
	UserID       core.UserIDString
	Email        string
	Password     string
	PasswordHash string
	Role         core.RoleString
	Profile      core.Profile
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty role registers a reader.
func BuildCommand(
	userID core.UserIDString,
	email string,
	password string,
	role core.RoleString,
	profile core.Profile,
	occurredAt time.Time,
) Command {

	if strings.TrimSpace(role) == "" {
		role = core.RoleReader
	}

	return Command{
		UserID:     userID,
		Email:      core.NormalizeEmail(email),
		Password:   password,
		Role:       role,
		Profile:    profile,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
