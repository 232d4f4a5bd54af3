package service

import (
	"context"
	"time"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/cache"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/sirupsen/logrus"
)

// UserStore is the authoritative store for users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// PostStore is the authoritative store for posts.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPostByID(ctx context.Context, id int64) (*models.Post, error)
	FindPosts(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	CountPosts(ctx context.Context, f models.PostFilter) (int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// CommentStore is the authoritative store for comments.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	FindCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	FindCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

// Store is the full authoritative store.
type Store interface {
	UserStore
	PostStore
	CommentStore
}

// Mailer sends account emails. Sending is best-effort.
type Mailer interface {
	SendWelcome(to, name string) error
}

// Service handles business logic
type Service struct {
	store  Store
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Logger
	mailer Mailer
}

// NewService initializes a new service. mailer may be nil, in which case
// no emails are sent.
func NewService(store Store, c cache.Cache, ttl time.Duration, log *logrus.Logger, mailer Mailer) *Service {
	return &Service{store: store, cache: c, ttl: ttl, log: log, mailer: mailer}
}

// owned is any resource whose creator holds exclusive mutation rights.
type owned interface {
	OwnerID() int64
}

// checkOwnership enforces the mutation right. Callers must have already
// confirmed the resource exists, so a probe on a missing id gets 404
// rather than 403.
func checkOwnership(resource owned, userID int64, message string) error {
	if resource.OwnerID() != userID {
		return apperrors.Forbidden(message)
	}
	return nil
}

// invalidatePostCaches drops the post's single-resource key and every
// list key. Called before a mutation returns; failures are logged and
// swallowed because caching is best-effort.
func (s *Service) invalidatePostCaches(ctx context.Context, postID int64) {
	if err := s.cache.Delete(ctx, cache.PostKey(postID)); err != nil {
		s.log.Warnf("Failed to invalidate post cache for %d: %v", postID, err)
	}
	s.invalidatePostListCaches(ctx)
}

// invalidatePostListCaches drops every list key. List keys are
// parameterized by arbitrary filter combinations, so any post write can
// affect any of them.
func (s *Service) invalidatePostListCaches(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, cache.PostListPrefix); err != nil {
		s.log.Warnf("Failed to invalidate post list cache: %v", err)
	}
}
