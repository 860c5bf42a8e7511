package web

// errors.go renders failures for the report server.
//
// Every handler error goes through respondError, which wraps it in a
// core.UserError, logs the technical detail with the request ID, and answers
// with JSON for API clients or an HTML error page for browsers.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/logging"
	"github.com/JonMunkholm/salaries/internal/web/templates"
)

// errNoReport is returned while no analysis has finished.
var errNoReport = errors.New("no report available")

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-facing error with statusCode.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userErr := core.NewUserError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", userErr.Technical.Error(),
		"code", userErr.User.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userErr.User, statusCode)
	} else {
		respondErrorHTML(w, r, userErr.User, statusCode)
	}
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error page", "error", err,
			"request_id", middleware.GetReqID(r.Context()))
	}
}

// statusFor picks the HTTP status for a render or report failure.
func statusFor(err error) int {
	var de *core.DataError
	switch {
	case errors.Is(err, errNoReport), errors.Is(err, core.ErrTooManyRenders):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrInsufficientData), errors.Is(err, core.ErrDivisionByZero), errors.As(err, &de):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON reports whether the client prefers a JSON error body.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
