package handler

import (
	"net/http"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/response"
)

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles comment creation on a post
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, apperrors.ErrMissingCredentials)
		return
	}

	postID, err := pathID(r, "postId")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Content == "" {
		response.Error(w, apperrors.Validation(map[string]string{"content": "Content is required"}))
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), postID, req.Content, claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "Comment created successfully", map[string]any{"comment": comment})
}

// ListCommentsByPost handles comment listing for a post
func (h *Handler) ListCommentsByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		response.Error(w, err)
		return
	}

	comments, err := h.svc.ListCommentsByPost(r.Context(), postID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Comments retrieved successfully", map[string]any{"comments": comments})
}

// GetComment handles single comment retrieval
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	comment, err := h.svc.GetCommentByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Comment retrieved successfully", map[string]any{"comment": comment})
}

// UpdateComment handles comment updates by the owner
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, apperrors.ErrMissingCredentials)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Content == "" {
		response.Error(w, apperrors.Validation(map[string]string{"content": "Content is required"}))
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), id, req.Content, claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Comment updated successfully", map[string]any{"comment": comment})
}

// DeleteComment handles comment deletion by the owner
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, apperrors.ErrMissingCredentials)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	if _, err := h.svc.DeleteComment(r.Context(), id, claims.UserID); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Comment deleted successfully", nil)
}
