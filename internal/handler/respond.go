package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"booking-api/internal/store"
	"booking-api/internal/token"
)

// apiError carries a client-safe message and the status code it maps to.
type apiError struct {
	code int
	msg  string
}

func (e apiError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return apiError{code: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// handle is the single error-translation boundary. Handlers return errors
// from the taxonomy; this adapter maps them onto the wire contract. Unknown
// errors are logged and reduced to a generic 500 so no internal detail
// reaches the caller.
func handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var ae apiError
		switch {
		case errors.As(err, &ae):
			writeError(w, ae.code, ae.msg)
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "appointment not found")
		case errors.Is(err, token.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
		default:
			log.Error().Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request failed")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
	}
}
