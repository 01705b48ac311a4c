package handler

import (
	"net/http"

	attendancedomain "amparo-go/internal/domain/attendance"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type attendanceRequest struct {
	MemberID     string `json:"member_id" validate:"required,uuid"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Present      bool   `json:"present"`
	ClassGroupID string `json:"class_group_id" validate:"omitempty,uuid"`
}

func (req attendanceRequest) toInput() (attendancedomain.Input, error) {
	date, err := parseDateRequired(req.Date)
	if err != nil {
		return attendancedomain.Input{}, err
	}
	input := attendancedomain.Input{
		MemberID: req.MemberID,
		Date:     date,
		Present:  req.Present,
	}
	if req.ClassGroupID != "" {
		groupID := req.ClassGroupID
		input.ClassGroupID = &groupID
	}
	return input, nil
}

type attendanceDTO struct {
	ID           string  `json:"id"`
	MemberID     string  `json:"member_id"`
	Date         string  `json:"date"`
	Present      bool    `json:"present"`
	ClassGroupID *string `json:"class_group_id"`
	Active       bool    `json:"active"`
}

func toAttendanceDTO(record *attendancedomain.Record) attendanceDTO {
	return attendanceDTO{
		ID:           record.ID,
		MemberID:     record.MemberID,
		Date:         record.Date.Format(dateLayout),
		Present:      record.Present,
		ClassGroupID: record.ClassGroupID,
		Active:       record.Active,
	}
}

type attendanceEnvelope struct {
	StatusCode int           `json:"status_code"`
	Record     attendanceDTO `json:"record"`
}

func (h *Handlers) ListAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := parseDateParam(query.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	from, err := parseDateParam(query.Get("data_inicio"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_inicio")
		return
	}
	to, err := parseDateParam(query.Get("data_fim"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_fim")
		return
	}

	records, err := h.attendance.List(r.Context(), attendancedomain.ListFilter{
		MemberID:     query.Get("member_id"),
		ClassGroupID: query.Get("class_group_id"),
		Date:         date,
		DateFrom:     from,
		DateTo:       to,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]attendanceDTO, 0, len(records))
	for i := range records {
		items = append(items, toAttendanceDTO(&records[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int             `json:"status_code"`
		Records    []attendanceDTO `json:"records"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	record, err := h.attendance.Create(r.Context(), actor, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, attendanceEnvelope{http.StatusCreated, toAttendanceDTO(record)})
}

type attendanceBatchRequest struct {
	Records []attendanceRequest `json:"records" validate:"required,min=1,dive"`
}

func (h *Handlers) CreateAttendanceBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req attendanceBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	inputs := make([]attendancedomain.Input, 0, len(req.Records))
	for _, entry := range req.Records {
		input, err := entry.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		inputs = append(inputs, input)
	}

	records, err := h.attendance.CreateBatch(r.Context(), actor, inputs)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]attendanceDTO, 0, len(records))
	for i := range records {
		items = append(items, toAttendanceDTO(&records[i]))
	}
	writeJSON(w, http.StatusCreated, struct {
		StatusCode int             `json:"status_code"`
		Records    []attendanceDTO `json:"records"`
	}{http.StatusCreated, items})
}

func (h *Handlers) GetAttendance(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendance.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendanceEnvelope{http.StatusOK, toAttendanceDTO(record)})
}

func (h *Handlers) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	record, err := h.attendance.Update(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendanceEnvelope{http.StatusOK, toAttendanceDTO(record)})
}

type attendanceStatusRequest struct {
	Present *bool `json:"present" validate:"required"`
}

func (h *Handlers) SetAttendanceStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req attendanceStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	record, err := h.attendance.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), *req.Present)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendanceEnvelope{http.StatusOK, toAttendanceDTO(record)})
}

func (h *Handlers) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.attendance.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "attendance record deactivated",
	})
}

func (h *Handlers) AttendanceByClassGroup(w http.ResponseWriter, r *http.Request) {
	classGroupID := r.URL.Query().Get("class_group_id")
	date, err := parseDateRequired(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	report, err := h.attendance.ByClassGroupDay(r.Context(), classGroupID, date)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]attendanceDTO, 0, len(report.Records))
	for i := range report.Records {
		items = append(items, toAttendanceDTO(&report.Records[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int                       `json:"status_code"`
		Records    []attendanceDTO           `json:"records"`
		Statistics attendancedomain.DayStats `json:"statistics"`
	}{http.StatusOK, items, report.Stats})
}

func (h *Handlers) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.attendance.MemberHistory(r.Context(), r.URL.Query().Get("member_id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]attendanceDTO, 0, len(history.Records))
	for i := range history.Records {
		items = append(items, toAttendanceDTO(&history.Records[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode   int             `json:"status_code"`
		Records      []attendanceDTO `json:"records"`
		TotalPresent int             `json:"total_present"`
		TotalAbsent  int             `json:"total_absent"`
	}{http.StatusOK, items, history.TotalPresent, history.TotalAbsent})
}
