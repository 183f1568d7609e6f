package changeuserrole_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/changeuserrole"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide_Success_WhenRoleChanges(t *testing.T) {
	// arrange
	now := time.Now()
	userID := GivenUniqueID(t)
	adminID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureReaderRegistered(userID, "ana@example.org", now.Add(-time.Hour))}

	// act
	result := changeuserrole.Decide(history, changeuserrole.BuildCommand(userID, core.RoleLibrarian, adminID, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.DomainEvents{core.BuildUserRoleChanged(userID, core.RoleLibrarian, adminID, now)}, result.Events)
}

func Test_Decide_Idempotent_WhenRoleIsUnchanged(t *testing.T) {
	now := time.Now()
	userID := GivenUniqueID(t)
	history := core.DomainEvents{
		FixtureReaderRegistered(userID, "ana@example.org", now.Add(-2*time.Hour)),
		core.BuildUserRoleChanged(userID, core.RoleLibrarian, GivenUniqueID(t), now.Add(-time.Hour)),
	}

	result := changeuserrole.Decide(history, changeuserrole.BuildCommand(userID, core.RoleLibrarian, GivenUniqueID(t), now))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_Cases(t *testing.T) {
	now := time.Now()
	userID := GivenUniqueID(t)
	adminRegistered := core.BuildUserRegistered(userID, "admin@example.org", "h", core.RoleAdmin, core.Profile{}, now.Add(-time.Hour))

	tests := []struct {
		name    string
		history core.DomainEvents
		command changeuserrole.Command
		kind    error
	}{
		{name: "unknown role", command: changeuserrole.BuildCommand(userID, "Jefe", userID, now), kind: core.ErrInvalidInput},
		{name: "unknown user", command: changeuserrole.BuildCommand(userID, core.RoleReader, GivenUniqueID(t), now), kind: core.ErrNotFound},
		{
			name:    "admin demotes themself",
			history: core.DomainEvents{adminRegistered},
			command: changeuserrole.BuildCommand(userID, core.RoleReader, userID, now),
			kind:    core.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := changeuserrole.Decide(tt.history, tt.command)

			assert.ErrorIs(t, result.HasError(), tt.kind)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
