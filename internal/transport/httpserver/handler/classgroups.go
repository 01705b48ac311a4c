package handler

import (
	"net/http"
	"time"

	classgroupdomain "amparo-go/internal/domain/classgroup"
	memberdomain "amparo-go/internal/domain/member"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type classGroupRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	MinAge int    `json:"min_age" validate:"gte=0"`
	MaxAge int    `json:"max_age" validate:"gte=0"`
}

type classGroupDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
	Active bool   `json:"active"`
}

func toClassGroupDTO(group *classgroupdomain.ClassGroup) classGroupDTO {
	return classGroupDTO{
		ID:     group.ID,
		Name:   group.Name,
		MinAge: group.MinAge,
		MaxAge: group.MaxAge,
		Active: group.Active,
	}
}

type classGroupEnvelope struct {
	StatusCode int           `json:"status_code"`
	ClassGroup classGroupDTO `json:"class_group"`
}

func (h *Handlers) ListClassGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.classGroups.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]classGroupDTO, 0, len(groups))
	for i := range groups {
		items = append(items, toClassGroupDTO(&groups[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode  int             `json:"status_code"`
		ClassGroups []classGroupDTO `json:"class_groups"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateClassGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req classGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	group, err := h.classGroups.Create(r.Context(), actor, classgroupdomain.Input{
		Name:   req.Name,
		MinAge: req.MinAge,
		MaxAge: req.MaxAge,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, classGroupEnvelope{http.StatusCreated, toClassGroupDTO(group)})
}

func (h *Handlers) GetClassGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.classGroups.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classGroupEnvelope{http.StatusOK, toClassGroupDTO(group)})
}

func (h *Handlers) UpdateClassGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req classGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	group, err := h.classGroups.Update(r.Context(), actor, chi.URLParam(r, "id"), classgroupdomain.Input{
		Name:   req.Name,
		MinAge: req.MinAge,
		MaxAge: req.MaxAge,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classGroupEnvelope{http.StatusOK, toClassGroupDTO(group)})
}

func (h *Handlers) DeleteClassGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.classGroups.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "class group deactivated",
	})
}

// SuggestClassGroup resolves the member's age at the reference date and
// returns the first active group whose band contains it. A null class_group
// means no band matched.
func (h *Handlers) SuggestClassGroup(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	reference := time.Now().UTC()
	if value := r.URL.Query().Get("date"); value != "" {
		parsed, err := parseDateRequired(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		reference = parsed
	}

	member, err := h.members.Get(r.Context(), memberID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	age := memberdomain.AgeOn(member.BirthDate, reference)
	group, err := h.classGroups.SuggestForAge(r.Context(), age)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response := struct {
		StatusCode int            `json:"status_code"`
		MemberID   string         `json:"member_id"`
		Age        int            `json:"age"`
		ClassGroup *classGroupDTO `json:"class_group"`
	}{StatusCode: http.StatusOK, MemberID: member.ID, Age: age}
	if group != nil {
		dto := toClassGroupDTO(group)
		response.ClassGroup = &dto
	}
	writeJSON(w, http.StatusOK, response)
}
