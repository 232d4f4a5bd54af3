package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/cache"
	"github.com/Dan9191/blog-service/internal/feed"
	"github.com/Dan9191/blog-service/internal/handler"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/service"
	"github.com/Dan9191/blog-service/internal/testutil"
	"github.com/Dan9191/blog-service/internal/token"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *mux.Router {
	svc := service.NewService(testutil.NewMemStore(), cache.NewMemoryCache(), time.Minute, testutil.NewLogger(), nil)
	tokens := token.NewService("test-secret", time.Hour)
	h := handler.NewHandler(svc, tokens, feed.NewBuilder("http://localhost:8080"))

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/posts/feed", h.Feed).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods("GET")
	api.HandleFunc("/comments/post/{postId:[0-9]+}", h.ListCommentsByPost).Methods("GET")
	api.HandleFunc("/comments/{id:[0-9]+}", h.GetComment).Methods("GET")

	optRouter := api.PathPrefix("/").Subrouter()
	optRouter.Use(middleware.OptionalAuth(tokens))
	optRouter.HandleFunc("/posts", h.ListPosts).Methods("GET")

	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Authenticate(tokens))
	authRouter.HandleFunc("/auth/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/posts", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/posts/{id:[0-9]+}", h.UpdatePost).Methods("PUT")
	authRouter.HandleFunc("/posts/{id:[0-9]+}", h.DeletePost).Methods("DELETE")
	authRouter.HandleFunc("/comments/{postId:[0-9]+}", h.CreateComment).Methods("POST")
	authRouter.HandleFunc("/comments/{id:[0-9]+}", h.UpdateComment).Methods("PUT")
	authRouter.HandleFunc("/comments/{id:[0-9]+}", h.DeleteComment).Methods("DELETE")

	return r
}

func do(t *testing.T, r *mux.Router, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func registerUser(t *testing.T, r *mux.Router, name, email string) (userID int64, bearer string) {
	t.Helper()
	rec := do(t, r, "POST", "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "Test123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	user := env.Data["user"].(map[string]any)
	return int64(user["id"].(float64)), env.Data["token"].(string)
}

func TestEndToEndFlow(t *testing.T) {
	r := newTestRouter()

	// Register
	rec := do(t, r, "POST", "/api/auth/register", "", map[string]any{
		"name": "Test User", "email": "test@example.com", "password": "Test123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	bearer := env.Data["token"].(string)
	require.NotEmpty(t, bearer)
	user := env.Data["user"].(map[string]any)
	userID := int64(user["id"].(float64))
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	// Duplicate registration conflicts
	rec = do(t, r, "POST", "/api/auth/register", "", map[string]any{
		"name": "Test User", "email": "test@example.com", "password": "Test123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", decode(t, rec).Message)

	// Create a post
	rec = do(t, r, "POST", "/api/posts", bearer, map[string]any{
		"title": "Post for Comments", "content": "This post will receive comments", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decode(t, rec).Data["post"].(map[string]any)
	postID := strconv.Itoa(int(post["id"].(float64)))

	// Comment on it
	rec = do(t, r, "POST", "/api/comments/"+postID, bearer, map[string]any{
		"content": "This is a great post!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decode(t, rec).Data["comment"].(map[string]any)
	assert.Equal(t, float64(userID), comment["authorId"])
	commentID := strconv.Itoa(int(comment["id"].(float64)))

	// A different user may not update the comment
	_, otherBearer := registerUser(t, r, "Other User", "other@example.com")
	rec = do(t, r, "PUT", "/api/comments/"+commentID, otherBearer, map[string]any{
		"content": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not authorized to update this comment", decode(t, rec).Message)

	// Delete the post, then reading it is a 404
	rec = do(t, r, "DELETE", "/api/posts/"+postID, bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post deleted successfully", decode(t, rec).Message)

	rec = do(t, r, "GET", "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode(t, rec).Message)
}

func TestCreatePostRequiresToken(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, "POST", "/api/posts", "", map[string]any{
		"title": "No auth", "content": "Should fail",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", decode(t, rec).Message)
}

func TestListPostsPaginationAndFilter(t *testing.T) {
	r := newTestRouter()
	_, bearer := registerUser(t, r, "Test User", "test@example.com")

	for _, p := range []map[string]any{
		{"title": "Published one", "content": "Visible to all readers", "published": true},
		{"title": "Draft one", "content": "Still being written", "published": false},
	} {
		rec := do(t, r, "POST", "/api/posts", bearer, p)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, r, "GET", "/api/posts?page=1&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	posts := env.Data["posts"].([]any)
	assert.Len(t, posts, 1)
	pagination := env.Data["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(2), pagination["totalItems"])

	rec = do(t, r, "GET", "/api/posts?published=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts = decode(t, rec).Data["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, true, posts[0].(map[string]any)["published"])
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, "POST", "/api/auth/register", "", map[string]any{"email": "test@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "password")
	assert.NotContains(t, env.Errors, "email")
}

func TestLoginAndProfile(t *testing.T) {
	r := newTestRouter()
	registerUser(t, r, "Test User", "test@example.com")

	rec := do(t, r, "POST", "/api/auth/login", "", map[string]any{
		"email": "test@example.com", "password": "Test123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Login successful", env.Message)
	bearer := env.Data["token"].(string)

	rec = do(t, r, "GET", "/api/auth/profile", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec).Data["user"].(map[string]any)
	assert.Equal(t, "test@example.com", profile["email"])

	rec = do(t, r, "POST", "/api/auth/login", "", map[string]any{
		"email": "test@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec).Message)
}

func TestFeedServesPublishedPosts(t *testing.T) {
	r := newTestRouter()
	_, bearer := registerUser(t, r, "Test User", "test@example.com")

	rec := do(t, r, "POST", "/api/posts", bearer, map[string]any{
		"title": "Feed worthy", "content": "Syndicated content", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, r, "POST", "/api/posts", bearer, map[string]any{
		"title": "Hidden draft", "content": "Not syndicated", "published": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, "GET", "/api/posts/feed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/rss+xml"))
	assert.Contains(t, rec.Body.String(), "Feed worthy")
	assert.NotContains(t, rec.Body.String(), "Hidden draft")
}
