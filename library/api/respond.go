package api

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

const (
	msgInvalidBody = "Cuerpo de la solicitud inválido"
	msgBusy        = "El sistema está ocupado, intente nuevamente"
	msgTimeout     = "La operación tardó demasiado, intente nuevamente"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageBody is the body of command responses.
type MessageBody struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageBody{Message: message})
}

// writeError renders err. Rule violations carry their own message, everything else falls back to fallbackMessage.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status, body := errorResponse(err, fallbackMessage)

	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.ErrorContext(r.Context(), logMsgRequestFailed,
			logAttrPath, r.URL.Path,
			logAttrStatus, status,
			shell.LogAttrError, err.Error(),
		)
	}

	writeJSON(w, status, body)
}

func errorResponse(err error, fallbackMessage string) (int, ErrorBody) {
	var violation core.RuleViolation
	if errors.As(err, &violation) {
		return statusForKind(violation.Kind), ErrorBody{Message: violation.Message}
	}

	switch {
	case shell.IsConcurrencyConflictError(err):
		return http.StatusServiceUnavailable, ErrorBody{Message: msgBusy}
	case shell.IsTimeoutError(err):
		return http.StatusGatewayTimeout, ErrorBody{Message: msgTimeout}
	default:
		return http.StatusInternalServerError, ErrorBody{Message: fallbackMessage, Error: err.Error()}
	}
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, core.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, core.ErrInvalidState), errors.Is(kind, core.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into target. An empty body leaves target untouched.
func decodeBody(r *http.Request, target any) error {
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
