package pendingloanrequests_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/pendingloanrequests"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsOnlyPendingRequests(t *testing.T) {
	// arrange
	now := time.Now()
	es := GivenMemoryEventStore()
	handler := pendingloanrequests.NewQueryHandler(es)
	readerID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	unknownBookID := GivenUniqueID(t)
	pendingRequestID := GivenUniqueID(t)
	rejectedRequestID := GivenUniqueID(t)

	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(readerID, "ana@biblioteca.test", now),
		FixtureBookAdded(bookID, 1, now),
		FixtureLoanRequested(rejectedRequestID, readerID, now, bookID),
		FixtureLoanRequested(pendingRequestID, readerID, now.Add(time.Minute), bookID, unknownBookID),
		core.BuildLoanRequestRejected(rejectedRequestID, readerID, "lib-1", now.Add(time.Hour)),
	)

	// act
	result, err := handler.Handle(context.Background(), pendingloanrequests.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)

	request := result.Requests[0]
	assert.Equal(t, pendingRequestID, request.ID)
	assert.Equal(t, "pendiente", request.Estado)
	assert.Equal(t, "Ana Ruiz", request.Usuario.Nombre)
	assert.Equal(t, "ana@biblioteca.test", request.Usuario.Email)
	require.Len(t, request.Libros, 2)
	assert.Equal(t, "Cien años de soledad", request.Libros[0].Nombre)
	assert.Equal(t, unknownBookID, request.Libros[1].ID)
	assert.Empty(t, request.Libros[1].Nombre)
}
