package updateprofile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/updateprofile"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide_Success_WhenProfileChanges(t *testing.T) {
	// arrange
	now := time.Now()
	userID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureReaderRegistered(userID, "ana@example.org", now.Add(-time.Hour))}
	profile := core.Profile{FirstName: "Ana", PaternalSurname: "Ruiz", Phone: "555-0100"}

	// act
	result := updateprofile.Decide(history, updateprofile.BuildCommand(userID, profile, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.DomainEvents{core.BuildUserProfileUpdated(userID, profile, now)}, result.Events)
}

func Test_Decide_Idempotent_WhenProfileIsUnchanged(t *testing.T) {
	now := time.Now()
	userID := GivenUniqueID(t)
	registered := FixtureReaderRegistered(userID, "ana@example.org", now.Add(-time.Hour))

	result := updateprofile.Decide(core.DomainEvents{registered}, updateprofile.BuildCommand(userID, registered.Profile, now))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Idempotent_ComparesWithLatestProfile(t *testing.T) {
	now := time.Now()
	userID := GivenUniqueID(t)
	updated := core.Profile{FirstName: "Ana María"}
	history := core.DomainEvents{
		FixtureReaderRegistered(userID, "ana@example.org", now.Add(-2*time.Hour)),
		core.BuildUserProfileUpdated(userID, updated, now.Add(-time.Hour)),
	}

	result := updateprofile.Decide(history, updateprofile.BuildCommand(userID, updated, now))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenUserIsUnknown(t *testing.T) {
	result := updateprofile.Decide(core.DomainEvents{}, updateprofile.BuildCommand(GivenUniqueID(t), core.Profile{FirstName: "Ana"}, time.Now()))

	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func Test_Decide_Error_WhenFirstNameIsEmpty(t *testing.T) {
	result := updateprofile.Decide(core.DomainEvents{}, updateprofile.BuildCommand(GivenUniqueID(t), core.Profile{}, time.Now()))

	assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
}
