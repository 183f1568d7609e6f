package registeredusers

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project lists all users in the order they registered, with their current profile and role.
//
// Query Logic:
//
//	GIVEN: All user events
//	WHEN: RegisteredUsers query is executed
//	THEN: RegisteredUsers is returned in registration order
func Project(history core.DomainEvents, _ Query) RegisteredUsers {
	var users []*User
	byID := make(map[core.UserIDString]*User)

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			if _, exists := byID[e.UserID]; exists {
				continue
			}

			u := &User{
				ID:            e.UserID,
				Nombre:        e.Profile.FullName(),
				Email:         e.Email,
				Rol:           e.Role,
				FechaRegistro: e.OccurredAt,
			}
			byID[e.UserID] = u
			users = append(users, u)

		case core.UserProfileUpdated:
			if u, ok := byID[e.UserID]; ok {
				u.Nombre = e.Profile.FullName()
			}

		case core.UserRoleChanged:
			if u, ok := byID[e.UserID]; ok {
				u.Rol = e.Role
			}
		}
	}

	result := RegisteredUsers{Users: make([]User, 0, len(users))}
	for _, u := range users {
		result.Users = append(result.Users, *u)
	}

	result.Count = len(result.Users)

	return result
}

// BuildEventFilter selects all user events.
func BuildEventFilter() eventstore.Filter {
	eventTypes := readmodel.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}
