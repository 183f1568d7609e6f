package userlookup

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/internal/readmodel"
)

// Project replays the events of one user.
//
// Query Logic:
//
//	GIVEN: The user events of userID
//	WHEN: UserLookup query is executed
//	THEN: User is returned with the latest profile and role, Found is false if the user never registered
func Project(history core.DomainEvents, userID core.UserIDString) User {
	var user User

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			if e.UserID != userID || user.Found {
				continue
			}

			user = User{
				Found:        true,
				UserID:       e.UserID,
				Email:        e.Email,
				PasswordHash: e.PasswordHash,
				Role:         e.Role,
				Profile:      e.Profile,
				RegisteredAt: e.OccurredAt,
			}

		case core.UserProfileUpdated:
			if e.UserID == userID && user.Found {
				user.Profile = e.Profile
			}

		case core.UserRoleChanged:
			if e.UserID == userID && user.Found {
				user.Role = e.Role
			}
		}
	}

	return user
}

// UserIDForEmail returns the id of the user registered with email.
func UserIDForEmail(history core.DomainEvents, email string) (core.UserIDString, bool) {
	for _, event := range history {
		if e, ok := event.(core.UserRegistered); ok && e.Email == email {
			return e.UserID, true
		}
	}

	return "", false
}

// BuildEmailFilter selects the registration carrying email.
func BuildEmailFilter(email string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("Email", core.NormalizeEmail(email))).
		Finalize()
}

// BuildEventFilter selects all events of the user.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	eventTypes := readmodel.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
