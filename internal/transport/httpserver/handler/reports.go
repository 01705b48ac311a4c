package handler

import (
	"net/http"
	"time"

	attendancedomain "amparo-go/internal/domain/attendance"
	basketdomain "amparo-go/internal/domain/basket"
	reportdomain "amparo-go/internal/domain/report"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type reportDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	GeneratedAt string `json:"generated_at"`
	Active      bool   `json:"active"`
}

func toReportDTO(report *reportdomain.Report) reportDTO {
	return reportDTO{
		ID:          report.ID,
		Type:        report.Type,
		PeriodStart: report.PeriodStart.Format(dateLayout),
		PeriodEnd:   report.PeriodEnd.Format(dateLayout),
		Description: report.Description,
		FilePath:    report.FilePath,
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Active:      report.Active,
	}
}

type reportEnvelope struct {
	StatusCode int       `json:"status_code"`
	Report     reportDTO `json:"report"`
}

func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]reportDTO, 0, len(reports))
	for i := range reports {
		items = append(items, toReportDTO(&reports[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int         `json:"status_code"`
		Reports    []reportDTO `json:"reports"`
	}{http.StatusOK, items})
}

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportEnvelope{http.StatusOK, toReportDTO(report)})
}

func (h *Handlers) DeleteReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.reports.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "report deactivated",
	})
}

type generateReportRequest struct {
	Type        string `json:"type" validate:"required,oneof=attendance basket general"`
	Description string `json:"description"`
	DataInicio  string `json:"data_inicio" validate:"required,datetime=2006-01-02"`
	DataFim     string `json:"data_fim" validate:"required,datetime=2006-01-02"`
}

func (h *Handlers) GenerateReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req generateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	from, err := parseDateRequired(req.DataInicio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_inicio")
		return
	}
	to, err := parseDateRequired(req.DataFim)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_fim")
		return
	}

	report, err := h.reports.Generate(r.Context(), actor, req.Type, req.Description, from, to)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reportEnvelope{http.StatusCreated, toReportDTO(report)})
}

func (h *Handlers) ReportSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r.URL.Query(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.reports.Summary(r.Context(), from, to)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode int                         `json:"status_code"`
		DataInicio string                      `json:"data_inicio"`
		DataFim    string                      `json:"data_fim"`
		Summary    *reportdomain.SummaryResult `json:"summary"`
	}{http.StatusOK, from.Format(dateLayout), to.Format(dateLayout), summary})
}

func (h *Handlers) ReportFrequency(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r.URL.Query(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.attendance.Frequency(r.Context(), from, to)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode int                             `json:"status_code"`
		DataInicio string                          `json:"data_inicio"`
		DataFim    string                          `json:"data_fim"`
		Rows       []attendancedomain.FrequencyRow `json:"rows"`
		Statistics attendancedomain.FrequencyStats `json:"statistics"`
	}{http.StatusOK, report.From.Format(dateLayout), report.To.Format(dateLayout), report.Rows, report.Stats})
}

func (h *Handlers) ReportBaskets(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r.URL.Query(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.baskets.Monthly(r.Context(), from, to)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode int                       `json:"status_code"`
		DataInicio string                    `json:"data_inicio"`
		DataFim    string                    `json:"data_fim"`
		Rows       []basketdomain.MonthlyRow `json:"rows"`
		Statistics basketdomain.MonthlyStats `json:"statistics"`
	}{http.StatusOK, report.From.Format(dateLayout), report.To.Format(dateLayout), report.Rows, report.Stats})
}

func (h *Handlers) ReportSizes(w http.ResponseWriter, r *http.Request) {
	distribution, err := h.reports.Sizes(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode   int                            `json:"status_code"`
		Distribution *reportdomain.SizeDistribution `json:"distribution"`
	}{http.StatusOK, distribution})
}

func (h *Handlers) ReportPrograms(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Programs(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode int                        `json:"status_code"`
		Statistics *reportdomain.ProgramStats `json:"statistics"`
	}{http.StatusOK, stats})
}
