package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	CloseAll(w http.ResponseWriter, r *http.Request)
	ResetTracking(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// readPhotoForm parses the multipart body shared by check-in and check-out:
// a JSON 'data' field plus a 'photo' file.
func readPhotoForm(w http.ResponseWriter, r *http.Request, dst interface{}) ([]byte, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, false
	}

	if dataJSON := r.FormValue("data"); dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
			slog.Error("failed to unmarshal form data field", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return nil, false
		}
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Face photo is required", nil)
			return nil, false
		}
		slog.Error("failed to read photo from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, false
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read photo bytes", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, false
	}

	return photo, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	photo, ok := readPhotoForm(w, r, &req)
	if !ok {
		return
	}
	req.Image = photo

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.RestoredSession {
		response.SuccessWithMessage(w, "Session restored", result)
		return
	}
	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	photo, ok := readPhotoForm(w, r, &req)
	if !ok {
		return
	}
	req.Image = photo

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.Status(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Ping implements AttendanceHandler.
func (h *attendanceHandlerImpl) Ping(w http.ResponseWriter, r *http.Request) {
	var req attendance.PingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.Ping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Resume implements AttendanceHandler.
func (h *attendanceHandlerImpl) Resume(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.ResumeSession(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session resumed", result)
}

// CloseAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) CloseAll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.CloseAllActiveSessions(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Open sessions closed", result)
}

// ResetTracking implements AttendanceHandler.
func (h *attendanceHandlerImpl) ResetTracking(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.attendanceService.ResetTracking(r.Context(), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tracking state reset", nil)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{
		EmployeeID: queryPtr(r, "employee_id"),
		BranchID:   queryPtr(r, "branch_id"),
		Date:       queryPtr(r, "date"),
		StartDate:  queryPtr(r, "start_date"),
		EndDate:    queryPtr(r, "end_date"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			response.BadRequest(w, "Invalid offset", nil)
			return
		}
		filter.Offset = offset
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func queryPtr(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
