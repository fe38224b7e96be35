package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
)

// Response is the standard {success, message} envelope used by every
// endpoint. Data holds endpoint-specific payload fields.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError translates service-layer errors to HTTP responses. The message
// texts are part of the frontend contract; change them with care.
func writeError(w http.ResponseWriter, err error) {
	var rl *apperr.RateLimitedError
	if errors.As(err, &rl) {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfterSeconds))
		writeJSON(w, http.StatusTooManyRequests, Response{Success: false, Message: rl.Error()})
		return
	}
	if apperr.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Response{Success: false, Message: "Not found"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Invalid email or password"})
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, Response{Success: false, Message: "An account with this email already exists"})
	case errors.Is(err, apperr.ErrExpiredOTP):
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "OTP has expired. Please request a new one."})
	case errors.Is(err, apperr.ErrInvalidOTP):
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid OTP. Please try again."})
	case errors.Is(err, apperr.ErrDelivery):
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Message: "Failed to send email. Please try again."})
	case errors.Is(err, apperr.ErrFlowState):
		writeJSON(w, http.StatusConflict, Response{Success: false, Message: "Invalid reset flow state. Please start over."})
	default:
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
	}
}

// extractBearerToken pulls the token out of "Authorization: Bearer <token>".
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
