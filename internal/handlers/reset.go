package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codeverse-ai/codeverse-backend/internal/services"
)

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	FlowID string `json:"flow_id"`
	OTP    string `json:"otp"`
}

type ResendOTPRequest struct {
	FlowID string `json:"flow_id"`
}

type ResetPasswordRequest struct {
	FlowID          string `json:"flow_id"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetHandler serves the three-step password reset flow. The flow id
// returned by ForgotPassword threads the subsequent requests together; all
// flow state lives server-side.
type ResetHandler struct {
	Reset *services.ResetService
}

func NewResetHandler(reset *services.ResetService) *ResetHandler {
	return &ResetHandler{Reset: reset}
}

// ForgotPassword starts a reset flow and emails a 6-digit OTP
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	flowID, err := h.Reset.Request(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "OTP sent to your email",
		Data:    map[string]string{"flow_id": flowID},
	})
}

// VerifyOTP checks the submitted code and advances the flow
func (h *ResetHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.Reset.Verify(r.Context(), req.FlowID, req.OTP); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "OTP verified"})
}

// ResendOTP regenerates and resends the code, subject to the cooldown
func (h *ResetHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.Reset.Resend(r.Context(), req.FlowID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "A new OTP has been sent to your email"})
}

// ResetPassword commits the new password and ends the flow
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.Reset.Commit(r.Context(), req.FlowID, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Password reset successfully. Please sign in with your new password."})
}
