package registeredusers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/registeredusers"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsUsersWithCurrentProfileAndRole(t *testing.T) {
	// arrange
	now := time.Now()
	es := GivenMemoryEventStore()
	handler := registeredusers.NewQueryHandler(es)
	readerID := GivenUniqueID(t)
	librarianID := GivenUniqueID(t)

	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(readerID, "Ana@Biblioteca.test", now),
		FixtureLibrarianRegistered(librarianID, now.Add(time.Minute)),
		core.BuildUserProfileUpdated(readerID, core.Profile{FirstName: "Ana María", PaternalSurname: "Ruiz"}, now.Add(time.Hour)),
		core.BuildUserRoleChanged(readerID, core.RoleAdmin, librarianID, now.Add(2*time.Hour)),
	)

	// act
	result, err := handler.Handle(context.Background(), registeredusers.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, readerID, result.Users[0].ID)
	assert.Equal(t, "Ana María Ruiz", result.Users[0].Nombre)
	assert.Equal(t, "ana@biblioteca.test", result.Users[0].Email)
	assert.Equal(t, core.RoleAdmin, result.Users[0].Rol)
	assert.Equal(t, core.RoleLibrarian, result.Users[1].Rol)
}
