package readerpanel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerpanel"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_SummarizesReaderActivity(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultPolicy()
	es := GivenMemoryEventStore()
	handler := readerpanel.NewQueryHandler(es, readerpanel.WithPolicy(policy))
	readerID := GivenUniqueID(t)
	returnedBookID := GivenUniqueID(t)
	lentBookID := GivenUniqueID(t)
	reservedBookID := GivenUniqueID(t)
	returnedRequestID := GivenUniqueID(t)
	returnedLoanID := core.LoanIDFor(returnedRequestID, returnedBookID)
	returnedAt := now.Add(policy.LoanPeriod + 48*time.Hour)

	GivenEventsWereAppended(t, es,
		FixtureReaderRegistered(readerID, "ana@biblioteca.test", now),
		FixtureBookAdded(returnedBookID, 1, now),
		FixtureBookAdded(lentBookID, 1, now),
		FixtureBookAdded(reservedBookID, 1, now),
		FixtureLoanStarted(returnedRequestID, readerID, returnedBookID, now, policy),
		FixtureLoanStarted(GivenUniqueID(t), readerID, lentBookID, now, policy),
		FixtureLoanStarted(GivenUniqueID(t), GivenUniqueID(t), reservedBookID, now, policy),
		FixtureReservationPlaced(GivenUniqueID(t), readerID, reservedBookID, now),
		core.BuildBookReturned(returnedLoanID, readerID, returnedBookID, "lib-1", returnedAt),
		core.BuildFineAssessed(core.FineIDFor(returnedLoanID), returnedLoanID, readerID, returnedBookID, 10, 2, returnedAt),
	)

	// act
	summary, err := handler.Handle(context.Background(), readerpanel.BuildQuery(readerID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, readerpanel.Summary{
		NombreCompleto:     "Ana Ruiz",
		PrestamosActivos:   1,
		MultasActivas:      1,
		ReservasPendientes: 1,
		TotalPrestados:     2,
	}, summary)
}

func Test_QueryHandler_Handle_FailsForUnknownReader(t *testing.T) {
	es := GivenMemoryEventStore()
	handler := readerpanel.NewQueryHandler(es)

	_, err := handler.Handle(context.Background(), readerpanel.BuildQuery(GivenUniqueID(t), time.Now()))

	assert.ErrorIs(t, err, core.ErrNotFound)
}
