package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/response"
)

type createPostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// CreatePost handles post creation
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, apperrors.ErrMissingCredentials)
		return
	}

	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "Title is required"
	}
	if req.Content == "" {
		fields["content"] = "Content is required"
	}
	if len(fields) > 0 {
		response.Error(w, apperrors.Validation(fields))
		return
	}

	post, err := h.svc.CreatePost(r.Context(), req.Title, req.Content, req.Published, claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "Post created successfully", map[string]any{"post": post})
}

// ListPosts handles paginated post listing with filters
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.PostFilter{}

	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if published, err := strconv.ParseBool(query.Get("published")); err == nil {
		filter.Published = &published
	}
	if authorID, err := strconv.ParseInt(query.Get("authorId"), 10, 64); err == nil {
		filter.AuthorID = &authorID
	}

	result, err := h.svc.ListPosts(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Posts retrieved successfully", result)
}

// GetPost handles single post retrieval
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	post, err := h.svc.GetPostByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Post retrieved successfully", map[string]any{"post": post})
}

// UpdatePost handles post updates by the owner
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
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

	var input models.UpdatePostInput
	if err := decodeBody(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), id, input, claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Post updated successfully", map[string]any{"post": post})
}

// DeletePost handles post deletion by the owner
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.svc.DeletePost(r.Context(), id, claims.UserID); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, "Post deleted successfully", nil)
}

// Feed serves an RSS feed of the latest published posts
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPublishedPosts(r.Context(), 20)
	if err != nil {
		response.Error(w, err)
		return
	}

	data, err := h.feed.Build(posts)
	if err != nil {
		response.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(data)
}
