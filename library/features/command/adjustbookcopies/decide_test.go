package adjustbookcopies_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/adjustbookcopies"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	now := time.Now()
	bookID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureBookAdded(bookID, 2, now.Add(-time.Hour))}

	// act
	result := adjustbookcopies.Decide(history, adjustbookcopies.BuildCommand(bookID, 5, now), core.DefaultPolicy())

	// assert
	assert.NoError(t, result.HasError())
	adjusted, ok := result.Events[0].(core.BookCopiesAdjusted)
	assert.True(t, ok)
	assert.Equal(t, 5, adjusted.Copies)
}

func Test_Decide_Error_WhenBelowCopiesInUse(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultPolicy()
	bookID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	history := core.DomainEvents{
		FixtureBookAdded(bookID, 2, now.Add(-2*time.Hour)),
		FixtureLoanStarted(GivenUniqueID(t), readerID, bookID, now.Add(-time.Hour), policy),
	}

	// act
	result := adjustbookcopies.Decide(history, adjustbookcopies.BuildCommand(bookID, 0, now), policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.Contains(t, result.HasError().Error(), "1 copias")
}

func Test_Decide_Error_WhenBookIsUnknown(t *testing.T) {
	result := adjustbookcopies.Decide(core.DomainEvents{}, adjustbookcopies.BuildCommand(GivenUniqueID(t), 1, time.Now()), core.DefaultPolicy())

	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func Test_Decide_Error_WhenNegative(t *testing.T) {
	bookID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureBookAdded(bookID, 1, time.Now().Add(-time.Hour))}

	result := adjustbookcopies.Decide(history, adjustbookcopies.BuildCommand(bookID, -1, time.Now()), core.DefaultPolicy())

	assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
}

func Test_Decide_Idempotent_WhenCopiesAreUnchanged(t *testing.T) {
	bookID := GivenUniqueID(t)
	history := core.DomainEvents{FixtureBookAdded(bookID, 3, time.Now().Add(-time.Hour))}

	result := adjustbookcopies.Decide(history, adjustbookcopies.BuildCommand(bookID, 3, time.Now()), core.DefaultPolicy())

	assert.True(t, result.IsIdempotent())
}
