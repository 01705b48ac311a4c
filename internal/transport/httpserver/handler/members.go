package handler

import (
	"net/http"
	"time"

	memberdomain "amparo-go/internal/domain/member"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type memberRequest struct {
	FamilyID          string `json:"family_id" validate:"required,uuid"`
	FullName          string `json:"full_name" validate:"required,max=200"`
	BirthDate         string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Sex               string `json:"sex" validate:"omitempty,oneof=M F m f"`
	Studying          bool   `json:"studying"`
	School            string `json:"school" validate:"omitempty,max=200"`
	SchoolGrade       string `json:"school_grade" validate:"omitempty,max=50"`
	RG                string `json:"rg" validate:"omitempty,max=20"`
	NIS               string `json:"nis" validate:"omitempty,max=20"`
	EnrollmentDocPath string `json:"enrollment_doc_path"`
	PhotoPath         string `json:"photo_path"`
	ShortsSize        string `json:"shorts_size" validate:"omitempty,max=10"`
	PantsSize         string `json:"pants_size" validate:"omitempty,max=10"`
	ShirtSize         string `json:"shirt_size" validate:"omitempty,max=10"`
}

func (req memberRequest) toInput() (memberdomain.Input, error) {
	birthDate, err := parseDateRequired(req.BirthDate)
	if err != nil {
		return memberdomain.Input{}, err
	}
	return memberdomain.Input{
		FamilyID:          req.FamilyID,
		FullName:          req.FullName,
		BirthDate:         birthDate,
		Sex:               req.Sex,
		Studying:          req.Studying,
		School:            req.School,
		SchoolGrade:       req.SchoolGrade,
		RG:                req.RG,
		NIS:               req.NIS,
		EnrollmentDocPath: req.EnrollmentDocPath,
		PhotoPath:         req.PhotoPath,
		ShortsSize:        req.ShortsSize,
		PantsSize:         req.PantsSize,
		ShirtSize:         req.ShirtSize,
	}, nil
}

type memberDTO struct {
	ID                string `json:"id"`
	FamilyID          string `json:"family_id"`
	FullName          string `json:"full_name"`
	BirthDate         string `json:"birth_date"`
	Age               int    `json:"age"`
	Sex               string `json:"sex"`
	Studying          bool   `json:"studying"`
	School            string `json:"school"`
	SchoolGrade       string `json:"school_grade"`
	RG                string `json:"rg"`
	NIS               string `json:"nis"`
	EnrollmentDocPath string `json:"enrollment_doc_path"`
	PhotoPath         string `json:"photo_path"`
	ShortsSize        string `json:"shorts_size"`
	PantsSize         string `json:"pants_size"`
	ShirtSize         string `json:"shirt_size"`
	Active            bool   `json:"active"`
}

func toMemberDTO(member *memberdomain.Member, now time.Time) memberDTO {
	return memberDTO{
		ID:                member.ID,
		FamilyID:          member.FamilyID,
		FullName:          member.FullName,
		BirthDate:         member.BirthDate.Format(dateLayout),
		Age:               member.Age(now),
		Sex:               member.Sex,
		Studying:          member.Studying,
		School:            member.School,
		SchoolGrade:       member.SchoolGrade,
		RG:                member.RG,
		NIS:               member.NIS,
		EnrollmentDocPath: member.EnrollmentDocPath,
		PhotoPath:         member.PhotoPath,
		ShortsSize:        member.ShortsSize,
		PantsSize:         member.PantsSize,
		ShirtSize:         member.ShirtSize,
		Active:            member.Active,
	}
}

type memberEnvelope struct {
	StatusCode int       `json:"status_code"`
	Member     memberDTO `json:"member"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	studying, err := parseBoolParam(r.URL.Query().Get("studying"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid studying")
		return
	}
	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid active")
		return
	}

	filter := memberdomain.ListFilter{
		FamilyID: r.URL.Query().Get("family_id"),
		Studying: studying,
	}
	if activeOnly != nil && *activeOnly {
		filter.ActiveOnly = true
	}

	members, err := h.members.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	now := time.Now().UTC()
	items := make([]memberDTO, 0, len(members))
	for i := range members {
		items = append(items, toMemberDTO(&members[i], now))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int         `json:"status_code"`
		Members    []memberDTO `json:"members"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req memberRequest
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

	member, err := h.members.Create(r.Context(), actor, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberEnvelope{http.StatusCreated, toMemberDTO(member, time.Now().UTC())})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberEnvelope{http.StatusOK, toMemberDTO(member, time.Now().UTC())})
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req memberRequest
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

	member, err := h.members.Update(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberEnvelope{http.StatusOK, toMemberDTO(member, time.Now().UTC())})
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.members.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "member deactivated",
	})
}
