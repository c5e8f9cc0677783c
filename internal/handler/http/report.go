package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/report"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	LOPStatement(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	var req report.MonthlyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Monthly report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

// Daily implements ReportHandler.
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	var req report.DailyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Daily report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, err := h.reportService.Daily(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

// LOPStatement implements ReportHandler.
func (h *reportHandlerImpl) LOPStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.LOPStatementRequest{
		EmployeeCode: q.Get("emp_id"),
		MonthlyReportRequest: report.MonthlyReportRequest{
			Year:  q.Get("year"),
			Month: q.Get("month"),
		},
	}

	file, err := h.reportService.LOPStatement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
