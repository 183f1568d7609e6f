package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/biblioteca/library/core"
)

func Test_DecisionResult_Outcomes(t *testing.T) {
	event := core.BuildFinePaid("f-1", "r-1", "lib-1", time.Now())

	idempotent := core.IdempotentDecision()
	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasEventsToAppend())
	assert.NoError(t, idempotent.HasError())

	success := core.SuccessDecision(event, event)
	assert.Len(t, success.Events, 2)
	assert.NoError(t, success.HasError())

	failed := core.ErrorDecision(event, core.Conflict("x"))
	assert.True(t, failed.HasEventsToAppend())
	assert.ErrorIs(t, failed.HasError(), core.ErrConflict)

	rejected := core.RejectedDecision(core.NotFound("Multa no encontrada"))
	assert.False(t, rejected.HasEventsToAppend())
	assert.ErrorIs(t, rejected.HasError(), core.ErrNotFound)
	assert.Equal(t, "Multa no encontrada", rejected.HasError().Error())
}

func Test_RuleViolation_SurvivesWrapping(t *testing.T) {
	err := errors.Join(errors.New("outer"), core.InvalidState("La multa ya no está pendiente"))

	var violation core.RuleViolation
	assert.ErrorAs(t, err, &violation)
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, "La multa ya no está pendiente", violation.Message)
}
