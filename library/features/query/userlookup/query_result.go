package userlookup

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

// User is the query result. Found is false if no user matched.
type User struct {
	Found        bool
	UserID       core.UserIDString
	Email        string
	PasswordHash string
	Role         core.RoleString
	Profile      core.Profile
	RegisteredAt time.Time
}
