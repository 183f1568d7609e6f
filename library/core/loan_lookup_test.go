package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
)

func Test_BookIDOfLoan(t *testing.T) {
	history := core.DomainEvents{
		givenBook("b-1", 1, t0),
		givenLoan("l-1", "r-1", "b-1", t0.Add(hours(1))),
		givenLoan("l-2", "r-2", "b-2", t0.Add(hours(2))),
	}

	assert.Equal(t, core.BookIDString("b-1"), core.BookIDOfLoan(history, "l-1"))
	assert.Equal(t, core.BookIDString("b-2"), core.BookIDOfLoan(history, "l-2"))
	assert.Empty(t, core.BookIDOfLoan(history, "l-3"))
}

func Test_BuildLoanCirculationFilter_FallsBackToTheLoanWhileTheBookIsUnknown(t *testing.T) {
	// act
	unknownBook := core.BuildLoanCirculationFilter("l-1", "")
	knownBook := core.BuildLoanCirculationFilter("l-1", "b-1")

	// assert
	assert.Equal(t, core.BuildLoanFilter("l-1"), unknownBook)

	require.Len(t, knownBook.Items(), 1)
	item := knownBook.Items()[0]
	assert.Contains(t, item.EventTypes(), core.LoanRenewedEventType)
	assert.Contains(t, item.EventTypes(), core.BookReturnedEventType)
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1")}, item.Predicates())
}
