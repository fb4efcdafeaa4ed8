// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"bannerearn-wallet/internal/util" // For custom errors
)

// DefaultTimeout bounds the handling time of a single request.
const DefaultTimeout = 10 * time.Second

const maxPageSize = 500

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Helper function to send JSON responses.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses. The status code follows the error kind.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := statusFor(err)
	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		logger.Error("Unhandled service error", "error", err)
		message = "Internal server error"
	}
	respondWithJSON(w, logger, statusCode, errorResponse{Error: message, Code: util.ErrorCode(err)})
}

func statusFor(err error) int {
	switch {
	case util.IsError(err, util.ErrDuplicateEntry):
		return http.StatusConflict
	case util.IsError(err, util.ErrValidation), util.IsError(err, util.ErrBusinessRule):
		return http.StatusBadRequest
	case util.IsError(err, util.ErrNotFound):
		return http.StatusNotFound
	case util.IsError(err, util.ErrInvalidCredentials), util.IsError(err, util.ErrUnauthorized):
		return http.StatusUnauthorized
	case util.IsError(err, util.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return util.ErrInvalidInput
	}
	return nil
}

// parsePagination reads limit and offset from the query string.
// Missing or malformed values fall back to defaultLimit and 0.
func parsePagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// clientIP strips the port from RemoteAddr, which middleware.RealIP may already have replaced.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
