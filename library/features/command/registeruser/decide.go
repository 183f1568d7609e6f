package registeruser

import (
	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

const (
	msgMissingCredentials = "Faltan el email y la contraseña"
	msgEmailTaken         = "El correo electrónico ya está registrado"
	msgInvalidRole        = "Rol no válido"
)

type state struct {
	userAlreadyRegistered bool
	emailTaken            bool
}

// Decide determines whether the user can be registered.
//
// Business Rules:
//
//	GIVEN: an email, a password and a role
//	WHEN: RegisterUser command is received
//	THEN: UserRegistered event is generated
//	ERROR: "Faltan el email y la contraseña" if one of them is empty
//	ERROR: "Rol no válido" if the role is unknown
//	ERROR: "El correo electrónico ya está registrado" if another user has this email
//	IDEMPOTENCY: If the user id is already registered, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.Email == "" || command.Password == "" {
		return core.RejectedDecision(core.InvalidInput(msgMissingCredentials))
	}

	if !core.IsValidRole(command.Role) {
		return core.RejectedDecision(core.InvalidInput(msgInvalidRole))
	}

	s := project(history, command.UserID, command.Email)

	if s.userAlreadyRegistered {
		return core.IdempotentDecision()
	}

	if s.emailTaken {
		return core.RejectedDecision(core.Conflict(msgEmailTaken))
	}

	return core.SuccessDecision(
		core.BuildUserRegistered(
			command.UserID,
			command.Email,
			command.PasswordHash,
			command.Role,
			command.Profile,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, userID core.UserIDString, email string) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.UserRegistered); ok {
			switch {
			case e.UserID == userID:
				s.userAlreadyRegistered = true
			case e.Email == email:
				s.emailTaken = true
			}
		}
	}

	return s
}

// BuildEventFilter selects the registrations with this user id or this email.
func BuildEventFilter(userID core.UserIDString, email string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType).
		AndAnyPredicateOf(
			eventstore.P("UserID", userID),
			eventstore.P("Email", core.NormalizeEmail(email)),
		).
		Finalize()
}
