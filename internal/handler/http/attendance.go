package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	VerifyPIN(w http.ResponseWriter, r *http.Request)
	RequestOTP(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// VerifyPIN implements AttendanceHandler.
func (h *attendanceHandlerImpl) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req attendance.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("VerifyPIN decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.VerifyPIN(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "PIN verified", result)
}

// RequestOTP implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req attendance.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestOTP decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RequestOTP(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "OTP sent to the registered email", result)
}

// VerifyOTP implements AttendanceHandler.
func (h *attendanceHandlerImpl) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req attendance.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("VerifyOTP decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.VerifyOTP(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "OTP verified", result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}
