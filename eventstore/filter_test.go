package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

func Test_FilterBuilder_MatchingAnyEvent_IsEmpty(t *testing.T) {
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	assert.True(t, filter.IsEmpty())
	assert.Empty(t, filter.Items())
}

func Test_FilterBuilder_SanitizesEventTypes(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanStarted", "", "BookReturned", "LoanStarted").
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 1)
	assert.Equal(t, []string{"BookReturned", "LoanStarted"}, filter.Items()[0].EventTypes())
	assert.Empty(t, filter.Items()[0].Predicates())
}

func Test_FilterBuilder_SanitizesPredicates(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(
			eventstore.P("ReaderID", "r-2"),
			eventstore.P("BookID", "b-1"),
			eventstore.P("", "x"),
			eventstore.P("BookID", ""),
			eventstore.P("ReaderID", "r-2"),
		).
		Finalize()

	// assert
	predicates := filter.Items()[0].Predicates()
	assert.Len(t, predicates, 2)
	assert.Equal(t, "BookID", predicates[0].Key())
	assert.Equal(t, "b-1", predicates[0].Val())
	assert.Equal(t, "ReaderID", predicates[1].Key())
	assert.False(t, filter.Items()[0].AllPredicatesMustMatch())
}

func Test_FilterBuilder_AllPredicatesOf_SetsFlag(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AllPredicatesOf(eventstore.P("BookID", "b-1"), eventstore.P("ReaderID", "r-1")).
		AndAnyEventTypeOf("ReservationPlaced").
		Finalize()

	assert.True(t, filter.Items()[0].AllPredicatesMustMatch())
	assert.Equal(t, []string{"ReservationPlaced"}, filter.Items()[0].EventTypes())
}

func Test_FilterBuilder_OrMatching_CreatesMultipleItems(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("UserRegistered").
		AndAnyPredicateOf(eventstore.P("UserID", "u-1")).
		OrMatching().
		AnyEventTypeOf("LoanStarted", "BookReturned").
		AndAnyPredicateOf(eventstore.P("ReaderID", "u-1")).
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 2)
	assert.Equal(t, []string{"UserRegistered"}, filter.Items()[0].EventTypes())
	assert.Equal(t, []string{"BookReturned", "LoanStarted"}, filter.Items()[1].EventTypes())
}

func Test_FilterBuilder_DropsItemsThatBecameEmpty(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("BookID", "")).
		OrMatching().
		AnyEventTypeOf("BookAddedToCatalog").
		Finalize()

	assert.Len(t, filter.Items(), 1)
	assert.Equal(t, []string{"BookAddedToCatalog"}, filter.Items()[0].EventTypes())
}

func Test_FilterBuilder_IntermediateBuildersAreNotShared(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("LoanStarted")

	// act
	first := base.AndAnyPredicateOf(eventstore.P("LoanID", "l-1")).Finalize()
	second := base.AndAnyPredicateOf(eventstore.P("LoanID", "l-2")).Finalize()

	// assert
	assert.Equal(t, "l-1", first.Items()[0].Predicates()[0].Val())
	assert.Equal(t, "l-2", second.Items()[0].Predicates()[0].Val())
	assert.Len(t, first.Items()[0].Predicates(), 1)
}
