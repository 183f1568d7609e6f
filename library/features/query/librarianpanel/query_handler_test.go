package librarianpanel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/librarianpanel"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_SummarizesLibrary(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultPolicy()
	es := GivenMemoryEventStore()
	handler := librarianpanel.NewQueryHandler(es, librarianpanel.WithPolicy(policy))
	bookID := GivenUniqueID(t)
	removedBookID := GivenUniqueID(t)
	approvedRequestID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	loanID := core.LoanIDFor(approvedRequestID, bookID)

	GivenEventsWereAppended(t, es,
		FixtureBookAdded(bookID, 3, now),
		FixtureBookAdded(removedBookID, 4, now),
		core.BuildBookRemovedFromCatalog(removedBookID, "isbn-"+removedBookID, now),
		FixtureLoanRequested(approvedRequestID, readerID, now, bookID),
		FixtureLoanRequested(GivenUniqueID(t), readerID, now, bookID),
		core.BuildLoanRequestApproved(approvedRequestID, readerID, "lib-1", now),
		FixtureLoanStarted(approvedRequestID, readerID, bookID, now, policy),
		core.BuildFineAssessed(core.FineIDFor(loanID), loanID, readerID, bookID, 5, 1, now),
	)

	// act
	summary, err := handler.Handle(context.Background(), librarianpanel.BuildQuery(now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, librarianpanel.Summary{
		PrestamosPendientes: 1,
		MultasActivas:       1,
		LibrosEnCatalogo:    1,
		CopiasDisponibles:   2,
	}, summary)
}
