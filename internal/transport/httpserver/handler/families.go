package handler

import (
	"net/http"
	"time"

	familydomain "amparo-go/internal/domain/family"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type familyRequest struct {
	Name                   string `json:"name" validate:"required,max=200"`
	PostalCode             string `json:"postal_code" validate:"omitempty,max=9"`
	Street                 string `json:"street" validate:"omitempty,max=200"`
	Number                 string `json:"number" validate:"omitempty,max=20"`
	Complement             string `json:"complement" validate:"omitempty,max=200"`
	District               string `json:"district" validate:"omitempty,max=100"`
	City                   string `json:"city" validate:"omitempty,max=100"`
	State                  string `json:"state" validate:"omitempty,len=2"`
	Notes                  string `json:"notes"`
	ReceivesSocialPrograms bool   `json:"receives_social_programs"`
	SocialPrograms         string `json:"social_programs"`
}

func (req familyRequest) toInput() familydomain.FamilyInput {
	return familydomain.FamilyInput{
		Name:                   req.Name,
		PostalCode:             req.PostalCode,
		Street:                 req.Street,
		Number:                 req.Number,
		Complement:             req.Complement,
		District:               req.District,
		City:                   req.City,
		State:                  req.State,
		Notes:                  req.Notes,
		ReceivesSocialPrograms: req.ReceivesSocialPrograms,
		SocialPrograms:         req.SocialPrograms,
	}
}

type familyDTO struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	PostalCode             string `json:"postal_code"`
	Street                 string `json:"street"`
	Number                 string `json:"number"`
	Complement             string `json:"complement"`
	District               string `json:"district"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	Notes                  string `json:"notes"`
	ReceivesSocialPrograms bool   `json:"receives_social_programs"`
	SocialPrograms         string `json:"social_programs"`
	Active                 bool   `json:"active"`
	CreatedAt              string `json:"created_at"`
}

func toFamilyDTO(family *familydomain.Family) familyDTO {
	return familyDTO{
		ID:                     family.ID,
		Name:                   family.Name,
		PostalCode:             family.PostalCode,
		Street:                 family.Street,
		Number:                 family.Number,
		Complement:             family.Complement,
		District:               family.District,
		City:                   family.City,
		State:                  family.State,
		Notes:                  family.Notes,
		ReceivesSocialPrograms: family.ReceivesSocialPrograms,
		SocialPrograms:         family.SocialPrograms,
		Active:                 family.Active,
		CreatedAt:              family.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type familyEnvelope struct {
	StatusCode int       `json:"status_code"`
	Family     familyDTO `json:"family"`
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid active")
		return
	}

	filter := familydomain.ListFilter{
		City:     r.URL.Query().Get("city"),
		District: r.URL.Query().Get("district"),
	}
	if activeOnly != nil && *activeOnly {
		filter.ActiveOnly = true
	}

	families, err := h.families.ListFamilies(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]familyDTO, 0, len(families))
	for i := range families {
		items = append(items, toFamilyDTO(&families[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int         `json:"status_code"`
		Families   []familyDTO `json:"families"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	family, err := h.families.CreateFamily(r.Context(), actor, req.toInput())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, familyEnvelope{http.StatusCreated, toFamilyDTO(family)})
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	family, err := h.families.GetFamily(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, familyEnvelope{http.StatusOK, toFamilyDTO(family)})
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	family, err := h.families.UpdateFamily(r.Context(), actor, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, familyEnvelope{http.StatusOK, toFamilyDTO(family)})
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.families.DeactivateFamily(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "family deactivated",
	})
}

type guardianRequest struct {
	FullName     string `json:"full_name" validate:"required,max=200"`
	CPF          string `json:"cpf" validate:"omitempty,max=14"`
	Phone        string `json:"phone" validate:"required,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	Sex          string `json:"sex" validate:"omitempty,oneof=M F m f"`
	BirthDate    string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Relationship string `json:"relationship" validate:"omitempty,max=100"`
}

func (req guardianRequest) toInput() (familydomain.GuardianInput, error) {
	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		return familydomain.GuardianInput{}, err
	}
	return familydomain.GuardianInput{
		FullName:     req.FullName,
		CPF:          req.CPF,
		Phone:        req.Phone,
		Email:        req.Email,
		Sex:          req.Sex,
		BirthDate:    birthDate,
		Relationship: req.Relationship,
	}, nil
}

type guardianDTO struct {
	ID           string `json:"id"`
	FamilyID     string `json:"family_id"`
	FullName     string `json:"full_name"`
	CPF          string `json:"cpf"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Sex          string `json:"sex"`
	BirthDate    string `json:"birth_date,omitempty"`
	Relationship string `json:"relationship"`
	Active       bool   `json:"active"`
}

func toGuardianDTO(guardian *familydomain.Guardian) guardianDTO {
	dto := guardianDTO{
		ID:           guardian.ID,
		FamilyID:     guardian.FamilyID,
		FullName:     guardian.FullName,
		CPF:          guardian.CPF,
		Phone:        guardian.Phone,
		Email:        guardian.Email,
		Sex:          guardian.Sex,
		Relationship: guardian.Relationship,
		Active:       guardian.Active,
	}
	if guardian.BirthDate != nil {
		dto.BirthDate = guardian.BirthDate.Format(dateLayout)
	}
	return dto
}

type guardianEnvelope struct {
	StatusCode int         `json:"status_code"`
	Guardian   guardianDTO `json:"guardian"`
}

func (h *Handlers) ListGuardians(w http.ResponseWriter, r *http.Request) {
	guardians, err := h.families.ListGuardians(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]guardianDTO, 0, len(guardians))
	for i := range guardians {
		items = append(items, toGuardianDTO(&guardians[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int           `json:"status_code"`
		Guardians  []guardianDTO `json:"guardians"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateGuardian(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req guardianRequest
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
		writeError(w, http.StatusBadRequest, "invalid birth_date")
		return
	}

	guardian, err := h.families.CreateGuardian(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, guardianEnvelope{http.StatusCreated, toGuardianDTO(guardian)})
}

func (h *Handlers) UpdateGuardian(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req guardianRequest
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
		writeError(w, http.StatusBadRequest, "invalid birth_date")
		return
	}

	guardian, err := h.families.UpdateGuardian(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guardianEnvelope{http.StatusOK, toGuardianDTO(guardian)})
}

func (h *Handlers) DeleteGuardian(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.families.DeactivateGuardian(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "guardian deactivated",
	})
}
