package removebook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/removebook"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide(t *testing.T) {
	now := time.Now()
	policy := core.DefaultPolicy()
	bookID := GivenUniqueID(t)
	added := FixtureBookAdded(bookID, 2, now.Add(-3*time.Hour))
	loan := FixtureLoanStarted(GivenUniqueID(t), GivenUniqueID(t), bookID, now.Add(-2*time.Hour), policy)

	tests := []struct {
		name        string
		history     core.DomainEvents
		expectedErr error
		idempotent  bool
	}{
		{name: "removes a book without loans", history: core.DomainEvents{added}},
		{name: "unknown book", history: core.DomainEvents{}, expectedErr: core.ErrNotFound},
		{name: "book with active loan", history: core.DomainEvents{added, loan}, expectedErr: core.ErrConflict},
		{
			name:    "book whose loan was returned",
			history: core.DomainEvents{added, loan, core.BuildBookReturned(loan.LoanID, loan.ReaderID, bookID, "", now.Add(-time.Hour))},
		},
		{
			name:       "already removed",
			history:    core.DomainEvents{added, core.BuildBookRemovedFromCatalog(bookID, added.ISBN, now.Add(-time.Hour))},
			idempotent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removebook.Decide(tt.history, removebook.BuildCommand(bookID, now), policy)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tt.expectedErr)
				return
			}

			assert.NoError(t, result.HasError())
			assert.Equal(t, tt.idempotent, result.IsIdempotent())

			if !tt.idempotent {
				removed, ok := result.Events[0].(core.BookRemovedFromCatalog)
				assert.True(t, ok)
				assert.Equal(t, added.ISBN, removed.ISBN)
			}
		})
	}
}
