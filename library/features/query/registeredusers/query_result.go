package registeredusers

import (
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

// User is one registered user. Nombre is the full name.
type User struct {
	ID            core.UserIDString `json:"id"`
	Nombre        string            `json:"nombre"`
	Email         string            `json:"email"`
	Rol           core.RoleString   `json:"rol"`
	FechaRegistro time.Time         `json:"fechaRegistro"`
}

// RegisteredUsers is the query result.
type RegisteredUsers struct {
	Users []User
	Count int
}
