package adjustbookcopies

import (
	"context"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
)

// CommandHandler orchestrates Query -> Unmarshal -> Decide -> Append with retry.
type CommandHandler struct {
	eventStore   shell.EventStore
	policy       core.Policy
	notifier     notify.Notifier
	logger       shell.Logger
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithPolicy replaces the default circulation policy.
func WithPolicy(policy core.Policy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// WithNotifier enables notices for reservations that became ready. Failures are logged to logger, if not nil.
func WithNotifier(notifier notify.Notifier, logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		policy:     core.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var result core.DecisionResult
	var history core.DomainEvents

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		history, result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err == nil && result.HasEventsToAppend() {
		h.notifyReady(ctx, history, result.Events, command)
	}

	return shell.ResultFor(result, retryMetrics, err), err
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (core.DomainEvents, core.DecisionResult, error) {

	filter := BuildEventFilter(command.BookID)

	ctx = eventstore.WithStrongConsistency(ctx)

	history, maxSequenceNumber, err := shell.LoadHistory(ctx, h.eventStore, filter)
	if err != nil {
		return nil, core.DecisionResult{}, err
	}

	result := Decide(history, command, h.policy)

	return history, result, shell.AppendDecision(ctx, h.eventStore, filter, maxSequenceNumber, result)
}

func (h CommandHandler) notifyReady(
	ctx context.Context,
	history core.DomainEvents,
	appended core.DomainEvents,
	command Command,
) {

	if h.notifier == nil {
		return
	}

	ready := notify.NewlyReady(history, appended, command.BookID, command.OccurredAt, h.policy)
	title := core.ProjectCirculation(history, command.BookID, command.OccurredAt, h.policy).Title

	if err := notify.NotifyReaders(ctx, h.eventStore, h.notifier, title, ready); err != nil && h.logger != nil {
		h.logger.Warn("notifying ready reservations failed", "book_id", command.BookID, "error", err.Error())
	}
}
