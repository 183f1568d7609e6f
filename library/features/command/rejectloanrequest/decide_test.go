package rejectloanrequest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/rejectloanrequest"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_Decide(t *testing.T) {
	now := time.Now()
	requestID := GivenUniqueID(t)
	readerID := GivenUniqueID(t)
	requested := FixtureLoanRequested(requestID, readerID, now.Add(-time.Hour), GivenUniqueID(t))
	command := rejectloanrequest.BuildCommand(requestID, GivenUniqueID(t), now)

	t.Run("pending request is rejected", func(t *testing.T) {
		result := rejectloanrequest.Decide(core.DomainEvents{requested}, command)

		assert.NoError(t, result.HasError())
		rejected, ok := result.Events[0].(core.LoanRequestRejected)
		assert.True(t, ok)
		assert.Equal(t, readerID, rejected.ReaderID)
		assert.Equal(t, command.RejectedBy, rejected.RejectedBy)
	})

	t.Run("unknown request", func(t *testing.T) {
		result := rejectloanrequest.Decide(core.DomainEvents{}, command)

		assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
		assert.Equal(t, "Solicitud no encontrada", result.HasError().Error())
	})

	t.Run("approved request", func(t *testing.T) {
		history := core.DomainEvents{requested, core.BuildLoanRequestApproved(requestID, readerID, "", now)}

		result := rejectloanrequest.Decide(history, command)

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidState)
	})

	t.Run("rejected request", func(t *testing.T) {
		history := core.DomainEvents{requested, core.BuildLoanRequestRejected(requestID, readerID, "", now)}

		result := rejectloanrequest.Decide(history, command)

		assert.True(t, result.IsIdempotent())
	})
}
