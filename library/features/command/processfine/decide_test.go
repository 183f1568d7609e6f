package processfine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/processfine"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func givenFine(t *testing.T, readerID string) core.FineAssessed {
	loanID := GivenUniqueID(t)

	return core.BuildFineAssessed(core.FineIDFor(loanID), loanID, readerID, GivenUniqueID(t), 10, 2, time.Now().Add(-time.Hour))
}

func Test_Decide(t *testing.T) {
	now := time.Now()
	readerID := GivenUniqueID(t)
	librarianID := GivenUniqueID(t)
	assessed := givenFine(t, readerID)
	paid := core.BuildFinePaid(assessed.FineID, readerID, librarianID, now.Add(-time.Minute))

	tests := []struct {
		name          string
		history       core.DomainEvents
		command       processfine.Command
		expectedErr   error
		expectedEvent core.DomainEvent
	}{
		{
			name:          "librarian marks as paid",
			history:       core.DomainEvents{assessed},
			command:       processfine.BuildCommand(assessed.FineID, "pagar", librarianID, false, now),
			expectedEvent: core.BuildFinePaid(assessed.FineID, readerID, librarianID, now),
		},
		{
			name:          "librarian waives",
			history:       core.DomainEvents{assessed},
			command:       processfine.BuildCommand(assessed.FineID, " Condonar ", librarianID, false, now),
			expectedEvent: core.BuildFineWaived(assessed.FineID, readerID, librarianID, now),
		},
		{
			name:          "reader pays own fine",
			history:       core.DomainEvents{assessed},
			command:       processfine.BuildCommand(assessed.FineID, "pagar", readerID, true, now),
			expectedEvent: core.BuildFinePaid(assessed.FineID, readerID, readerID, now),
		},
		{
			name:        "unknown action",
			history:     core.DomainEvents{assessed},
			command:     processfine.BuildCommand(assessed.FineID, "borrar", librarianID, false, now),
			expectedErr: core.ErrInvalidInput,
		},
		{
			name:        "unknown fine",
			history:     core.DomainEvents{},
			command:     processfine.BuildCommand(assessed.FineID, "pagar", librarianID, false, now),
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "reader pays fine of someone else",
			history:     core.DomainEvents{assessed},
			command:     processfine.BuildCommand(assessed.FineID, "pagar", GivenUniqueID(t), true, now),
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "reader waives",
			history:     core.DomainEvents{assessed},
			command:     processfine.BuildCommand(assessed.FineID, "condonar", readerID, true, now),
			expectedErr: core.ErrForbidden,
		},
		{
			name:        "fine already paid",
			history:     core.DomainEvents{assessed, paid},
			command:     processfine.BuildCommand(assessed.FineID, "condonar", librarianID, false, now),
			expectedErr: core.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processfine.Decide(tt.history, tt.command)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tt.expectedErr)
				assert.False(t, result.HasEventsToAppend())
				return
			}

			assert.NoError(t, result.HasError())
			assert.Equal(t, core.DomainEvents{tt.expectedEvent}, result.Events)
		})
	}
}
