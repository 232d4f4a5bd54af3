package handler

import (
	"net/http"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/response"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "Name is required"
	}
	if req.Email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		response.Error(w, apperrors.Validation(fields))
		return
	}

	user, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "User registered successfully", map[string]any{
		"user":  user,
		"token": tokenString,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		response.Error(w, apperrors.Validation(fields))
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Login successful", map[string]any{
		"user":  user,
		"token": tokenString,
	})
}

// Profile returns the authenticated user's profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, apperrors.ErrMissingCredentials)
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Profile retrieved successfully", map[string]any{"user": user})
}
