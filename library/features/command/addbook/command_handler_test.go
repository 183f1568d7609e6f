package addbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/addbook"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_AddsBookOnce(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := GivenMemoryEventStore()
	handler := addbook.NewCommandHandler(es)
	command := givenCommand(t, "978-84-376-0494-7", 2)

	// act
	first, err := handler.Handle(ctx, command)
	require.NoError(t, err)
	second, err := handler.Handle(ctx, command)
	require.NoError(t, err)
	_, duplicateErr := handler.Handle(ctx, givenCommand(t, "978-84-376-0494-7", 1))

	// assert
	assert.False(t, first.Idempotent)
	assert.True(t, second.Idempotent)
	assert.ErrorIs(t, duplicateErr, core.ErrConflict)
	assert.Len(t, EventsOfType[core.BookAddedToCatalog](t, es), 1)
}
