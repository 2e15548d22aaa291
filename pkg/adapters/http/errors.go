package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/schema"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var validation *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTerminalOccupied),
		errors.Is(err, domain.ErrNodeInUse),
		errors.Is(err, domain.ErrCycle):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCompute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTerminal),
		errors.Is(err, domain.ErrUnknownParameter),
		errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrAbstractVariant),
		errors.Is(err, domain.ErrUnsupportedOperation),
		errors.Is(err, document.ErrInvalidConnection),
		errors.Is(err, document.ErrUnsupportedVersion),
		errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, pictograph.ErrNoStore):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeError(w, status, err.Error())
}
