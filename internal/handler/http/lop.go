package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LOPHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	ListForEmployee(w http.ResponseWriter, r *http.Request)
}

type lopHandlerImpl struct {
	lopService lop.LOPService
}

func NewLOPHandler(lopService lop.LOPService) LOPHandler {
	return &lopHandlerImpl{lopService: lopService}
}

// Mark implements LOPHandler.
func (h *lopHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req lop.MarkLOPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark LOP decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.lopService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "LOP marked successfully", record)
}

// ListForEmployee implements LOPHandler. year and month default to the current month.
func (h *lopHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	req := lop.ListLOPRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Year:         now.Year(),
		Month:        now.Month(),
	}

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		req.Year = year
	}
	if m := r.URL.Query().Get("month"); m != "" {
		month, ok := validator.ParseMonth(m)
		if !ok {
			response.BadRequest(w, "month must be 1-12 or a month name", nil)
			return
		}
		req.Month = month
	}

	result, err := h.lopService.ListForEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
