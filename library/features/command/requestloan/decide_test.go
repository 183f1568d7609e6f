package requestloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/requestloan"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

type fixture struct {
	now      time.Time
	policy   core.Policy
	readerID string
	bookID   string
	history  core.DomainEvents
}

func givenRegisteredReaderAndBook(t *testing.T) fixture {
	now := time.Now()
	readerID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)

	return fixture{
		now:      now,
		policy:   core.DefaultPolicy(),
		readerID: readerID,
		bookID:   bookID,
		history: core.DomainEvents{
			FixtureReaderRegistered(readerID, "lector@biblioteca.test", now.Add(-48*time.Hour)),
			FixtureBookAdded(bookID, 1, now.Add(-48*time.Hour)),
		},
	}
}

func (f fixture) command(t *testing.T, bookIDs ...string) requestloan.Command {
	return requestloan.BuildCommand(GivenUniqueID(t), f.readerID, bookIDs, f.now)
}

func Test_BuildCommand_DeduplicatesBooks(t *testing.T) {
	command := requestloan.BuildCommand("r-1", "u-1", []string{"b-2", "b-1", "b-2", ""}, time.Now())

	assert.Equal(t, []string{"b-2", "b-1"}, command.BookIDs)
}

func Test_Decide_Success(t *testing.T) {
	// arrange
	f := givenRegisteredReaderAndBook(t)
	command := f.command(t, f.bookID)

	// act
	result := requestloan.Decide(f.history, command, f.policy)

	// assert
	assert.NoError(t, result.HasError())
	requested, ok := result.Events[0].(core.LoanRequested)
	assert.True(t, ok)
	assert.Equal(t, command.RequestID, requested.RequestID)
	assert.Equal(t, []string{f.bookID}, requested.BookIDs)
}

func Test_Decide_Rejected(t *testing.T) {
	f := givenRegisteredReaderAndBook(t)

	t.Run("no books", func(t *testing.T) {
		result := requestloan.Decide(f.history, f.command(t), f.policy)

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
		assert.False(t, result.HasEventsToAppend())
	})

	t.Run("reader not registered", func(t *testing.T) {
		result := requestloan.Decide(f.history[1:], f.command(t, f.bookID), f.policy)

		assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
	})

	t.Run("book not in catalog", func(t *testing.T) {
		result := requestloan.Decide(f.history, f.command(t, f.bookID, GivenUniqueID(t)), f.policy)

		assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
		assert.False(t, result.HasEventsToAppend())
	})
}

func Test_Decide_Failed_WhenReaderHasPendingFine(t *testing.T) {
	// arrange
	f := givenRegisteredReaderAndBook(t)
	loan := FixtureLoanStarted(GivenUniqueID(t), f.readerID, f.bookID, f.now.Add(-40*time.Hour), f.policy)
	history := append(f.history,
		loan,
		core.BuildBookReturned(loan.LoanID, f.readerID, f.bookID, "", f.now.Add(-time.Hour)),
		core.BuildFineAssessed(core.FineIDFor(loan.LoanID), loan.LoanID, f.readerID, f.bookID, 5, 1, f.now.Add(-time.Hour)),
	)

	// act
	result := requestloan.Decide(history, f.command(t, f.bookID), f.policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	failed, ok := result.Events[0].(core.RequestingLoanFailed)
	assert.True(t, ok)
	assert.Contains(t, failed.FailureInfo, "multas pendientes")
}

func Test_Decide_Success_WhenFineWasPaid(t *testing.T) {
	f := givenRegisteredReaderAndBook(t)
	fineID := GivenUniqueID(t)
	history := append(f.history,
		core.BuildFineAssessed(fineID, GivenUniqueID(t), f.readerID, f.bookID, 5, 1, f.now.Add(-2*time.Hour)),
		core.BuildFinePaid(fineID, f.readerID, f.readerID, f.now.Add(-time.Hour)),
	)

	result := requestloan.Decide(history, f.command(t, f.bookID), f.policy)

	assert.NoError(t, result.HasError())
}

func Test_Decide_Failed_WhenBookIsAlreadyRequested(t *testing.T) {
	f := givenRegisteredReaderAndBook(t)
	history := append(f.history, FixtureLoanRequested(GivenUniqueID(t), f.readerID, f.now.Add(-time.Hour), f.bookID))

	result := requestloan.Decide(history, f.command(t, f.bookID), f.policy)

	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.Contains(t, result.HasError().Error(), "Cien años de soledad")
}

func Test_Decide_Success_WhenEarlierRequestWasRejected(t *testing.T) {
	f := givenRegisteredReaderAndBook(t)
	requestID := GivenUniqueID(t)
	history := append(f.history,
		FixtureLoanRequested(requestID, f.readerID, f.now.Add(-2*time.Hour), f.bookID),
		core.BuildLoanRequestRejected(requestID, f.readerID, GivenUniqueID(t), f.now.Add(-time.Hour)),
	)

	result := requestloan.Decide(history, f.command(t, f.bookID), f.policy)

	assert.NoError(t, result.HasError())
}

func Test_Decide_Failed_WhenMaxBooksOutWouldBeExceeded(t *testing.T) {
	// arrange
	f := givenRegisteredReaderAndBook(t)
	f.policy.MaxBooksOut = 2
	otherBookID := GivenUniqueID(t)
	history := append(f.history,
		FixtureBookAdded(otherBookID, 1, f.now.Add(-48*time.Hour)),
		FixtureLoanStarted(GivenUniqueID(t), f.readerID, GivenUniqueID(t), f.now.Add(-time.Hour), f.policy),
	)

	// act
	result := requestloan.Decide(history, f.command(t, f.bookID, otherBookID), f.policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.IsType(t, core.RequestingLoanFailed{}, result.Events[0])
}

func Test_Decide_Idempotent_WhenRequestWasAlreadyMade(t *testing.T) {
	f := givenRegisteredReaderAndBook(t)
	command := f.command(t, f.bookID)
	history := append(f.history, FixtureLoanRequested(command.RequestID, f.readerID, f.now, f.bookID))

	result := requestloan.Decide(history, command, f.policy)

	assert.True(t, result.IsIdempotent())
}
