package registeruser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/registeruser"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide_Success_WhenEmailIsFree(t *testing.T) {
	// arrange
	now := time.Now()
	command := registeruser.BuildCommand(GivenUniqueID(t), " Ana@Example.org", "s3cret", "", core.Profile{FirstName: "Ana"}, now)
	command.PasswordHash = "hash"

	// act
	result := registeruser.Decide(core.DomainEvents{}, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
	registered, ok := result.Events[0].(core.UserRegistered)
	assert.True(t, ok)
	assert.Equal(t, "ana@example.org", registered.Email)
	assert.Equal(t, core.RoleReader, registered.Role)
	assert.Equal(t, "hash", registered.PasswordHash)
}

func Test_Decide_Error_WhenEmailOrPasswordMissing(t *testing.T) {
	now := time.Now()

	for _, command := range []registeruser.Command{
		registeruser.BuildCommand(GivenUniqueID(t), "", "s3cret", "", core.Profile{}, now),
		registeruser.BuildCommand(GivenUniqueID(t), "ana@example.org", "", "", core.Profile{}, now),
	} {
		result := registeruser.Decide(core.DomainEvents{}, command)

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
		assert.EqualError(t, result.HasError(), "Faltan el email y la contraseña")
		assert.False(t, result.HasEventsToAppend())
	}
}

func Test_Decide_Error_WhenRoleIsUnknown(t *testing.T) {
	command := registeruser.BuildCommand(GivenUniqueID(t), "ana@example.org", "s3cret", "Superuser", core.Profile{}, time.Now())

	result := registeruser.Decide(core.DomainEvents{}, command)

	assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
}

func Test_Decide_Error_WhenEmailIsTaken(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{FixtureReaderRegistered(GivenUniqueID(t), "ana@example.org", now.Add(-time.Hour))}
	command := registeruser.BuildCommand(GivenUniqueID(t), "ANA@example.org", "s3cret", "", core.Profile{}, now)

	// act
	result := registeruser.Decide(history, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.EqualError(t, result.HasError(), "El correo electrónico ya está registrado")
}

func Test_Decide_Idempotent_WhenUserIsAlreadyRegistered(t *testing.T) {
	now := time.Now()
	userID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureReaderRegistered(userID, "ana@example.org", now.Add(-time.Hour))}
	command := registeruser.BuildCommand(userID, "ana@example.org", "s3cret", "", core.Profile{}, now)

	result := registeruser.Decide(history, command)

	assert.True(t, result.IsIdempotent())
	assert.NoError(t, result.HasError())
}
