package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskjournal/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, messageResponse{Message: msg})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// writeError maps a manager error to an HTTP status and a {message} body.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	var ve *common.ValidationError

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNoChanges):
		writeMessage(w, http.StatusBadRequest, "No changes")
	case errors.Is(err, common.ErrorDuplicateEmail):
		writeMessage(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, common.ErrorIncorrectPassword):
		writeMessage(w, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeMessage(w, http.StatusUnauthorized, "Refresh token expired")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorTransient):
		s.logger.Error(ctx, "store failure", "request_id", requestID(ctx), "op", op, "error", err.Error())
		writeMessage(w, http.StatusServiceUnavailable, "Temporary failure, please retry")
	default:
		s.logger.Error(ctx, "unexpected error", "request_id", requestID(ctx), "op", op, "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
