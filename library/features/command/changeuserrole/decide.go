package changeuserrole

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgInvalidRole  = "Rol no válido"
	msgUserNotFound = "Usuario no encontrado"
	msgSelfDemotion = "No puede quitarse a sí mismo el rol de administrador"
)

type state struct {
	userExists  bool
	currentRole core.RoleString
}

// Decide determines whether the role of the user changes.
//
// Business Rules:
//
//	GIVEN: a registered user and one of the three roles
//	WHEN: ChangeUserRole command is received
//	THEN: UserRoleChanged event is generated
//	ERROR: "Rol no válido" if the role is unknown
//	ERROR: "Usuario no encontrado" if the user is not registered
//	ERROR: "No puede quitarse a sí mismo el rol de administrador" if an administrator demotes themself
//	IDEMPOTENCY: If the user already has the role, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if !core.IsValidRole(command.Role) {
		return core.RejectedDecision(core.InvalidInput(msgInvalidRole))
	}

	s := project(history, command.UserID)

	if !s.userExists {
		return core.RejectedDecision(core.NotFound(msgUserNotFound))
	}

	if s.currentRole == command.Role {
		return core.IdempotentDecision()
	}

	if command.UserID == command.ChangedBy && s.currentRole == core.RoleAdmin {
		return core.RejectedDecision(core.Forbidden(msgSelfDemotion))
	}

	return core.SuccessDecision(core.BuildUserRoleChanged(command.UserID, command.Role, command.ChangedBy, command.OccurredAt))
}

func project(history core.DomainEvents, userID core.UserIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.UserRegistered:
			if e.UserID == userID {
				s.userExists = true
				s.currentRole = e.Role
			}

		case core.UserRoleChanged:
			if e.UserID == userID {
				s.currentRole = e.Role
			}
		}
	}

	return s
}

// BuildEventFilter selects the registration and role changes of the user.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType, core.UserRoleChangedEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
