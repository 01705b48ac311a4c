package handler

import (
	"net/http"

	authdomain "amparo-go/internal/domain/auth"
	"amparo-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	StatusCode int     `json:"status_code"`
	Token      string  `json:"token"`
	User       userDTO `json:"user"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		StatusCode: http.StatusOK,
		Token:      token,
		User:       toUserDTO(user),
	})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	user, err := h.auth.GetUser(r.Context(), actor.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		StatusCode int     `json:"status_code"`
		User       userDTO `json:"user"`
	}{http.StatusOK, toUserDTO(user)})
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin attendant viewer"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.auth.CreateUser(r.Context(), actor, req.Email, req.Password, req.Role)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		StatusCode int     `json:"status_code"`
		User       userDTO `json:"user"`
	}{http.StatusCreated, toUserDTO(user)})
}

func toUserDTO(user *authdomain.User) userDTO {
	return userDTO{ID: user.ID, Email: user.Email, Role: user.Role}
}
