package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranastores/attendance-backend-go/internal/handler/http/response"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/validator"
	"github.com/kiranastores/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Daily implements ReportHandler.
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "Query parameter 'date' is required in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.reportService.DailyReport(r.Context(), date, queryPtr(r, "branch_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Range implements ReportHandler.
func (h *reportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	req := report.RangeRequest{
		EmployeeID: queryPtr(r, "employee_id"),
		BranchID:   queryPtr(r, "branch_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.RangeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements ReportHandler.
func (h *reportHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	result, err := h.reportService.Calendar(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
