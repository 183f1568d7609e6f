package api

import (
	"log/slog"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/addbook"
	"github.com/AntonStoeckl/biblioteca/library/features/command/adjustbookcopies"
	"github.com/AntonStoeckl/biblioteca/library/features/command/approveloanrequest"
	"github.com/AntonStoeckl/biblioteca/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/biblioteca/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/biblioteca/library/features/command/placereservation"
	"github.com/AntonStoeckl/biblioteca/library/features/command/processfine"
	"github.com/AntonStoeckl/biblioteca/library/features/command/registeruser"
	"github.com/AntonStoeckl/biblioteca/library/features/command/rejectloanrequest"
	"github.com/AntonStoeckl/biblioteca/library/features/command/removebook"
	"github.com/AntonStoeckl/biblioteca/library/features/command/renewloan"
	"github.com/AntonStoeckl/biblioteca/library/features/command/requestloan"
	"github.com/AntonStoeckl/biblioteca/library/features/command/returnbook"
	"github.com/AntonStoeckl/biblioteca/library/features/command/updateprofile"
	"github.com/AntonStoeckl/biblioteca/library/features/query/activeloans"
	"github.com/AntonStoeckl/biblioteca/library/features/query/catalog"
	"github.com/AntonStoeckl/biblioteca/library/features/query/librarianpanel"
	"github.com/AntonStoeckl/biblioteca/library/features/query/pendingfines"
	"github.com/AntonStoeckl/biblioteca/library/features/query/pendingloanrequests"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerfines"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerloans"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerpanel"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerreservations"
	"github.com/AntonStoeckl/biblioteca/library/features/query/registeredusers"
	"github.com/AntonStoeckl/biblioteca/library/features/query/userlookup"
	"github.com/AntonStoeckl/biblioteca/library/shell"
	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
	"github.com/AntonStoeckl/biblioteca/library/shell/observable"
)

// Handlers are all command and query handlers the routes dispatch to.
type Handlers struct {
	RegisterUser       shell.CommandHandler[registeruser.Command]
	UpdateProfile      shell.CommandHandler[updateprofile.Command]
	ChangeUserRole     shell.CommandHandler[changeuserrole.Command]
	AddBook            shell.CommandHandler[addbook.Command]
	AdjustBookCopies   shell.CommandHandler[adjustbookcopies.Command]
	RemoveBook         shell.CommandHandler[removebook.Command]
	RequestLoan        shell.CommandHandler[requestloan.Command]
	ApproveLoanRequest shell.CommandHandler[approveloanrequest.Command]
	RejectLoanRequest  shell.CommandHandler[rejectloanrequest.Command]
	ReturnBook         shell.CommandHandler[returnbook.Command]
	RenewLoan          shell.CommandHandler[renewloan.Command]
	ProcessFine        shell.CommandHandler[processfine.Command]
	PlaceReservation   shell.CommandHandler[placereservation.Command]
	CancelReservation  shell.CommandHandler[cancelreservation.Command]

	Catalog             shell.QueryHandler[catalog.Query, catalog.Catalog]
	ReaderPanel         shell.QueryHandler[readerpanel.Query, readerpanel.Summary]
	ReaderLoans         shell.QueryHandler[readerloans.Query, readerloans.ReaderLoans]
	ReaderFines         shell.QueryHandler[readerfines.Query, readerfines.ReaderFines]
	ReaderReservations  shell.QueryHandler[readerreservations.Query, readerreservations.ReaderReservations]
	LibrarianPanel      shell.QueryHandler[librarianpanel.Query, librarianpanel.Summary]
	PendingLoanRequests shell.QueryHandler[pendingloanrequests.Query, pendingloanrequests.PendingLoanRequests]
	ActiveLoans         shell.QueryHandler[activeloans.Query, activeloans.ActiveLoans]
	PendingFines        shell.QueryHandler[pendingfines.Query, pendingfines.Fines]
	RegisteredUsers     shell.QueryHandler[registeredusers.Query, registeredusers.RegisteredUsers]
	UserLookup          shell.QueryHandler[userlookup.Query, userlookup.User]
}

// HandlerDependencies is what the handlers are built from. Everything after Policy is optional.
type HandlerDependencies struct {
	EventStore   shell.EventStore
	Hasher       registeruser.PasswordHasher
	Policy       core.Policy
	Notifier     notify.Notifier
	Logger       *slog.Logger
	RetryOptions []shell.RetryOption
	Metrics      shell.MetricsCollector
	Tracing      shell.TracingCollector
}

// NewHandlers builds every handler and wraps it with logging, metrics and tracing where these are given.
func NewHandlers(deps HandlerDependencies) (Handlers, error) {
	es := deps.EventStore
	policy := deps.Policy
	logger := deps.Logger

	var notifierLogger shell.Logger
	if logger != nil {
		notifierLogger = logger
	}

	h := Handlers{}
	b := handlerBuilder{
		logger:       logger,
		retryDefault: deps.RetryOptions,
		metrics:      deps.Metrics,
		tracing:      deps.Tracing,
	}

	h.RegisterUser = observeCommand[registeruser.Command](&b, registeruser.NewCommandHandler(es, deps.Hasher,
		registeruser.WithRetryOptions(b.retryOptions(registeruser.Command{})...)))
	h.UpdateProfile = observeCommand[updateprofile.Command](&b, updateprofile.NewCommandHandler(es,
		updateprofile.WithRetryOptions(b.retryOptions(updateprofile.Command{})...)))
	h.ChangeUserRole = observeCommand[changeuserrole.Command](&b, changeuserrole.NewCommandHandler(es,
		changeuserrole.WithRetryOptions(b.retryOptions(changeuserrole.Command{})...)))
	h.AddBook = observeCommand[addbook.Command](&b, addbook.NewCommandHandler(es,
		addbook.WithRetryOptions(b.retryOptions(addbook.Command{})...)))
	h.AdjustBookCopies = observeCommand[adjustbookcopies.Command](&b, adjustbookcopies.NewCommandHandler(es,
		adjustbookcopies.WithRetryOptions(b.retryOptions(adjustbookcopies.Command{})...),
		adjustbookcopies.WithPolicy(policy),
		adjustbookcopies.WithNotifier(deps.Notifier, notifierLogger)))
	h.RemoveBook = observeCommand[removebook.Command](&b, removebook.NewCommandHandler(es,
		removebook.WithRetryOptions(b.retryOptions(removebook.Command{})...),
		removebook.WithPolicy(policy)))
	h.RequestLoan = observeCommand[requestloan.Command](&b, requestloan.NewCommandHandler(es,
		requestloan.WithRetryOptions(b.retryOptions(requestloan.Command{})...),
		requestloan.WithPolicy(policy)))
	h.ApproveLoanRequest = observeCommand[approveloanrequest.Command](&b, approveloanrequest.NewCommandHandler(es,
		approveloanrequest.WithRetryOptions(b.retryOptions(approveloanrequest.Command{})...),
		approveloanrequest.WithPolicy(policy)))
	h.RejectLoanRequest = observeCommand[rejectloanrequest.Command](&b, rejectloanrequest.NewCommandHandler(es,
		rejectloanrequest.WithRetryOptions(b.retryOptions(rejectloanrequest.Command{})...)))
	h.ReturnBook = observeCommand[returnbook.Command](&b, returnbook.NewCommandHandler(es,
		returnbook.WithRetryOptions(b.retryOptions(returnbook.Command{})...),
		returnbook.WithPolicy(policy),
		returnbook.WithNotifier(deps.Notifier, notifierLogger)))
	h.RenewLoan = observeCommand[renewloan.Command](&b, renewloan.NewCommandHandler(es,
		renewloan.WithRetryOptions(b.retryOptions(renewloan.Command{})...),
		renewloan.WithPolicy(policy)))
	h.ProcessFine = observeCommand[processfine.Command](&b, processfine.NewCommandHandler(es,
		processfine.WithRetryOptions(b.retryOptions(processfine.Command{})...)))
	h.PlaceReservation = observeCommand[placereservation.Command](&b, placereservation.NewCommandHandler(es,
		placereservation.WithRetryOptions(b.retryOptions(placereservation.Command{})...),
		placereservation.WithPolicy(policy)))
	h.CancelReservation = observeCommand[cancelreservation.Command](&b, cancelreservation.NewCommandHandler(es,
		cancelreservation.WithRetryOptions(b.retryOptions(cancelreservation.Command{})...),
		cancelreservation.WithPolicy(policy),
		cancelreservation.WithNotifier(deps.Notifier, notifierLogger)))

	h.Catalog = observeQuery[catalog.Query, catalog.Catalog](&b, catalog.NewQueryHandler(es, catalog.WithPolicy(policy)))
	h.ReaderPanel = observeQuery[readerpanel.Query, readerpanel.Summary](&b, readerpanel.NewQueryHandler(es, readerpanel.WithPolicy(policy)))
	h.ReaderLoans = observeQuery[readerloans.Query, readerloans.ReaderLoans](&b, readerloans.NewQueryHandler(es, readerloans.WithPolicy(policy)))
	h.ReaderFines = observeQuery[readerfines.Query, readerfines.ReaderFines](&b, readerfines.NewQueryHandler(es))
	h.ReaderReservations = observeQuery[readerreservations.Query, readerreservations.ReaderReservations](&b, readerreservations.NewQueryHandler(es, readerreservations.WithPolicy(policy)))
	h.LibrarianPanel = observeQuery[librarianpanel.Query, librarianpanel.Summary](&b, librarianpanel.NewQueryHandler(es, librarianpanel.WithPolicy(policy)))
	h.PendingLoanRequests = observeQuery[pendingloanrequests.Query, pendingloanrequests.PendingLoanRequests](&b, pendingloanrequests.NewQueryHandler(es))
	h.ActiveLoans = observeQuery[activeloans.Query, activeloans.ActiveLoans](&b, activeloans.NewQueryHandler(es, activeloans.WithPolicy(policy)))
	h.PendingFines = observeQuery[pendingfines.Query, pendingfines.Fines](&b, pendingfines.NewQueryHandler(es))
	h.RegisteredUsers = observeQuery[registeredusers.Query, registeredusers.RegisteredUsers](&b, registeredusers.NewQueryHandler(es))
	h.UserLookup = observeQuery[userlookup.Query, userlookup.User](&b, userlookup.NewQueryHandler(es))

	if b.err != nil {
		return Handlers{}, b.err
	}

	return h, nil
}

// handlerBuilder keeps the first wrapping error so NewHandlers can build everything in one pass.
type handlerBuilder struct {
	logger       *slog.Logger
	retryDefault []shell.RetryOption
	metrics      shell.MetricsCollector
	tracing      shell.TracingCollector
	err          error
}

func (b *handlerBuilder) retryOptions(command shell.Command) []shell.RetryOption {
	options := append([]shell.RetryOption(nil), b.retryDefault...)
	if b.logger != nil {
		options = append(options, shell.WithRetryLogging(b.logger, command.CommandType()))
	}

	return options
}

func (b *handlerBuilder) observes() bool {
	return b.err == nil && (b.logger != nil || b.metrics != nil || b.tracing != nil)
}

func observeCommand[C shell.Command](b *handlerBuilder, handler shell.CommandHandler[C]) shell.CommandHandler[C] {
	if !b.observes() {
		return handler
	}

	options := []observable.CommandOption[C]{
		observable.WithCommandMetrics[C](b.metrics),
		observable.WithCommandTracing[C](b.tracing),
	}
	if b.logger != nil {
		options = append(options, observable.WithCommandContextualLogging[C](b.logger))
	}

	wrapped, err := observable.NewCommandWrapper(handler, options...)
	if err != nil {
		b.err = err
		return handler
	}

	return wrapped
}

func observeQuery[Q shell.Query, R any](b *handlerBuilder, handler shell.QueryHandler[Q, R]) shell.QueryHandler[Q, R] {
	if !b.observes() {
		return handler
	}

	options := []observable.QueryOption[Q, R]{
		observable.WithQueryMetrics[Q, R](b.metrics),
		observable.WithQueryTracing[Q, R](b.tracing),
	}
	if b.logger != nil {
		options = append(options, observable.WithQueryContextualLogging[Q, R](b.logger))
	}

	wrapped, err := observable.NewQueryWrapper(handler, options...)
	if err != nil {
		b.err = err
		return handler
	}

	return wrapped
}
