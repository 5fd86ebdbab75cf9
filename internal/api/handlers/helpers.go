package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hvisser/gatehouse/internal/apperr"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the apperr taxonomy to HTTP responses. Unknown email
// and wrong password both come out as the same 401 body so the API does
// not confirm which addresses are registered. Unexpected errors become
// a generic 500 with the detail only in the log.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: ve.Fields})
		return
	}

	switch {
	case apperr.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorBody{Error: "email is already registered"})
	case apperr.IsNotFound(err), errors.Is(err, apperr.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid credentials"})
	case errors.Is(err, apperr.ErrAuthRequired):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
	default:
		log.Error().Err(err).Msg("Unhandled error in request")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
