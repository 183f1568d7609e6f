package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/biblioteca/library/shell"
	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
)

const (
	defaultAddr            = ":5000"
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second

	logMsgServerStarted  = "HTTP server started"
	logMsgServerStopping = "HTTP server stopping"
	logMsgRequest        = "HTTP request"
	logMsgRequestFailed  = "HTTP request failed"

	logAttrAddr      = "addr"
	logAttrMethod    = "method"
	logAttrPath      = "path"
	logAttrStatus    = "status"
	logAttrRequestID = "request_id"
	logAttrDuration  = "duration_ms"
)

var (
	// ErrMissingHandlers is returned when the server is built without handlers.
	ErrMissingHandlers = errors.New("handlers are required")

	// ErrMissingTokenIssuer is returned when the server is built without a token issuer.
	ErrMissingTokenIssuer = errors.New("token issuer is required")
)

// PasswordMatcher is satisfied by auth.PasswordHasher.
type PasswordMatcher interface {
	Matches(hash string, password string) bool
}

// Options configure the server. Logger, Metrics and Tracing are optional, Clock and NewID have defaults.
type Options struct {
	Addr            string
	CORSOrigin      string
	Handlers        *Handlers
	Tokens          *auth.TokenIssuer
	Passwords       PasswordMatcher
	Logger          *slog.Logger
	Metrics         shell.MetricsCollector
	Tracing         shell.TracingCollector
	Clock           func() time.Time
	NewID           func() string
	ShutdownTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	handlers        Handlers
	tokens          auth.TokenIssuer
	passwords       PasswordMatcher
	logger          *slog.Logger
	metrics         shell.MetricsCollector
	tracing         shell.TracingCollector
	now             func() time.Time
	newID           func() string
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

// New builds the server and its router.
func New(opts Options) (*Server, error) {
	if opts.Handlers == nil {
		return nil, ErrMissingHandlers
	}

	if opts.Tokens == nil {
		return nil, ErrMissingTokenIssuer
	}

	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	if opts.NewID == nil {
		opts.NewID = newUUIDv7
	}

	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		handlers:        *opts.Handlers,
		tokens:          *opts.Tokens,
		passwords:       opts.Passwords,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		tracing:         opts.Tracing,
		now:             opts.Clock,
		newID:           opts.NewID,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(opts.CORSOrigin),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if s.logger != nil {
			s.logger.Info(logMsgServerStarted, logAttrAddr, s.httpServer.Addr)
		}

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.logger != nil {
		s.logger.Info(logMsgServerStopping)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) routes(corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.observeRequests)
	r.Use(chimw.Recoverer)

	if corsOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{corsOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
		})

		r.Route("/libros", func(r chi.Router) {
			r.Get("/", s.listBooks)
			r.Get("/generos", s.listGenres)
			r.Get("/autores", s.listAuthors)
			r.Get("/{id}", s.getBook)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/perfil", s.getProfile)
			r.Put("/perfil", s.updateProfile)

			r.Route("/lector", func(r chi.Router) {
				r.Use(s.requireRole(roleReader, msgReadersOnly))

				r.Get("/panel/summary", s.readerPanel)
				r.Post("/solicitudes", s.requestLoan)
				r.Get("/prestamos", s.readerLoans)
				r.Get("/historial", s.readerHistory)
				r.Post("/prestamos/{id}/renovar", s.renewLoan)
				r.Get("/multas", s.readerFines)
				r.Post("/multas/{id}/pagar", s.payOwnFine)
				r.Get("/reservas", s.readerReservations)
				r.Post("/reservas", s.placeReservation)
				r.Delete("/reservas/{id}", s.cancelReservation)
			})

			r.Route("/bibliotecario", func(r chi.Router) {
				r.Use(s.requireRole(roleLibrarian, msgLibrariansOnly))

				r.Get("/panel/summary", s.librarianPanel)
				r.Get("/prestamos-pendientes", s.pendingLoanRequests)
				r.Get("/prestamos-activos", s.activeLoans)
				r.Post("/solicitudes/{id}/aprobar", s.approveLoanRequest)
				r.Post("/solicitudes/{id}/rechazar", s.rejectLoanRequest)
				r.Post("/prestamos/{id}/devolver", s.returnBook)
				r.Get("/multas", s.pendingFines)
				r.Post("/multas/{id}/procesar", s.processFine)
				r.Post("/libros", s.addBook)
				r.Put("/libros/{id}/copias", s.adjustBookCopies)
				r.Delete("/libros/{id}", s.removeBook)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireRole(roleAdmin, msgAdminsOnly))

				r.Get("/usuarios", s.listUsers)
				r.Post("/usuarios", s.createUser)
				r.Put("/usuarios/{id}/rol", s.changeUserRole)
			})
		})
	})

	return r
}

func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
