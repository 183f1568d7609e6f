package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/query/userlookup"
	"github.com/AntonStoeckl/biblioteca/library/shell"
	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
)

const (
	roleReader    = core.RoleReader
	roleLibrarian = core.RoleLibrarian
	roleAdmin     = core.RoleAdmin

	msgMissingToken   = "Token de acceso requerido"
	msgInvalidToken   = "Token de acceso inválido o expirado"
	msgReadersOnly    = "Acceso restringido a lectores"
	msgLibrariansOnly = "Acceso restringido a bibliotecarios"
	msgAdminsOnly     = "Acceso restringido a administradores"
	msgRoleCheck      = "Error al verificar el rol del usuario"

	metricRequestDuration = "http_server_request_duration_seconds"
	metricRequests        = "http_server_requests_total"
	spanNameRequest       = "HTTP "

	attrRoute      = "route"
	attrStatusCode = "status_code"
)

// authenticate requires a valid bearer token and puts its principal into the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeMessage(w, http.StatusUnauthorized, msgMissingToken)
			return
		}

		principal, err := s.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// requireRole checks the role the caller has right now, not the one in the token, so that role
// changes apply immediately.
func (s *Server) requireRole(role core.RoleString, forbiddenMessage string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, msgMissingToken)
				return
			}

			user, err := s.handlers.UserLookup.Handle(r.Context(), userlookup.BuildByIDQuery(principal.UserID))
			if err != nil {
				s.writeError(w, r, err, msgRoleCheck)
				return
			}

			if !user.Found || user.Role != role {
				writeMessage(w, http.StatusForbidden, forbiddenMessage)
				return
			}

			principal.Role = user.Role
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), logMsgRequest,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrStatus, ww.Status(),
			logAttrRequestID, chimw.GetReqID(r.Context()),
			logAttrDuration, shell.ToMilliseconds(time.Since(start)),
		)
	})
}

// observeRequests records a span and duration metrics per request, labeled with the chi route
// pattern so that path parameters do not blow up the cardinality.
func (s *Server) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil && s.tracing == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx, span := r.Context(), shell.SpanContext(nil)
		if s.tracing != nil {
			ctx, span = s.tracing.StartSpan(ctx, spanNameRequest+r.Method, map[string]string{
				logAttrMethod: r.Method,
				logAttrPath:   r.URL.Path,
			})
		}

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := shell.StatusSuccess
		if code >= http.StatusInternalServerError {
			status = shell.StatusError
		}

		labels := map[string]string{
			logAttrMethod:  r.Method,
			attrRoute:      route,
			attrStatusCode: strconv.Itoa(code),
		}
		duration := time.Since(start)

		eventstore.RecordDuration(ctx, s.metrics, metricRequestDuration, duration, labels)
		eventstore.IncrementCounter(ctx, s.metrics, metricRequests, labels)

		if span != nil {
			s.tracing.FinishSpan(span, status, map[string]string{
				attrRoute:        route,
				attrStatusCode:   strconv.Itoa(code),
				logAttrRequestID: chimw.GetReqID(r.Context()),
				logAttrDuration:  strconv.FormatFloat(shell.ToMilliseconds(duration), 'f', 3, 64),
			})
		}
	})
}

func principalOf(r *http.Request) auth.Principal {
	principal, _ := auth.PrincipalFrom(r.Context())

	return principal
}
