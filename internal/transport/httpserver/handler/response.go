package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	attendancedomain "amparo-go/internal/domain/attendance"
	authdomain "amparo-go/internal/domain/auth"
	basketdomain "amparo-go/internal/domain/basket"
	classgroupdomain "amparo-go/internal/domain/classgroup"
	familydomain "amparo-go/internal/domain/family"
	memberdomain "amparo-go/internal/domain/member"
	reportdomain "amparo-go/internal/domain/report"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	StatusCode int               `json:"status_code"`
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{StatusCode: status, Error: message})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		StatusCode: http.StatusBadRequest,
		Error:      "validation failed",
		Fields:     fields,
	})
}

// respondError maps a domain error onto the HTTP envelope: 400 for invalid
// input, 403 for role violations, 404 for missing rows, 409 for duplicate
// facts. Anything unmapped is a 500 with the detail kept out of the body.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeFieldErrors(w, fieldErrors(validationErrs))
		return
	}

	switch {
	case errors.Is(err, authdomain.ErrForbidden):
		writeError(w, http.StatusForbidden, "insufficient role")
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, familydomain.ErrFamilyNotFound),
		errors.Is(err, familydomain.ErrGuardianNotFound),
		errors.Is(err, memberdomain.ErrMemberNotFound),
		errors.Is(err, memberdomain.ErrFamilyNotFound),
		errors.Is(err, classgroupdomain.ErrClassGroupNotFound),
		errors.Is(err, attendancedomain.ErrRecordNotFound),
		errors.Is(err, attendancedomain.ErrMemberNotFound),
		errors.Is(err, basketdomain.ErrDeliveryNotFound),
		errors.Is(err, basketdomain.ErrFamilyNotFound),
		errors.Is(err, reportdomain.ErrReportNotFound),
		errors.Is(err, authdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, attendancedomain.ErrDuplicateDate),
		errors.Is(err, basketdomain.ErrDuplicateDate),
		errors.Is(err, authdomain.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, memberdomain.ErrBirthDateRequired),
		errors.Is(err, classgroupdomain.ErrInvalidAgeRange),
		errors.Is(err, attendancedomain.ErrMemberRequired),
		errors.Is(err, attendancedomain.ErrClassGroupRequired),
		errors.Is(err, attendancedomain.ErrDateRequired),
		errors.Is(err, attendancedomain.ErrEmptyBatch),
		errors.Is(err, basketdomain.ErrFamilyRequired),
		errors.Is(err, basketdomain.ErrDateRequired),
		errors.Is(err, basketdomain.ErrEmptyBatch),
		errors.Is(err, reportdomain.ErrInvalidType),
		errors.Is(err, reportdomain.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		h.log.InternalError("request failed", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
