package updateprofile

import (
	"strings"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgUserNotFound     = "Usuario no encontrado"
	msgFirstNameMissing = "El nombre es obligatorio"
)

type state struct {
	userExists     bool
	currentProfile core.Profile
}

// Decide determines whether the profile changes.
//
// Business Rules:
//
//	GIVEN: a registered user
//	WHEN: UpdateProfile command is received
//	THEN: UserProfileUpdated event is generated
//	ERROR: "El nombre es obligatorio" if the first name is empty
//	ERROR: "Usuario no encontrado" if the user is not registered
//	IDEMPOTENCY: If the profile is unchanged, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if strings.TrimSpace(command.Profile.FirstName) == "" {
		return core.RejectedDecision(core.InvalidInput(msgFirstNameMissing))
	}

	s := project(history, command.UserID)

	if !s.userExists {
		return core.RejectedDecision(core.NotFound(msgUserNotFound))
	}

	if s.currentProfile == command.Profile {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildUserProfileUpdated(command.UserID, command.Profile, command.OccurredAt))
}

func project(history core.DomainEvents, userID core.UserIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			if e.UserID == userID {
				s.userExists = true
				s.currentProfile = e.Profile
			}

		case core.UserProfileUpdated:
			if e.UserID == userID {
				s.currentProfile = e.Profile
			}
		}
	}

	return s
}

// BuildEventFilter selects the registration and profile changes of the user.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType, core.UserProfileUpdatedEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
