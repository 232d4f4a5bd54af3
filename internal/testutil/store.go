// Package testutil provides in-memory fakes for tests.
package testutil

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MemStore is an in-memory authoritative store with the same error
// contract as the postgres repository. Creation timestamps are strictly
// increasing so ordering assertions are deterministic.
type MemStore struct {
	mu       sync.Mutex
	users    map[int64]models.User
	posts    map[int64]models.Post
	comments map[int64]models.Comment
	nextID   int64
	clock    time.Time
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[int64]models.User),
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *MemStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *MemStore) userBrief(id int64) *models.UserBrief {
	if u, ok := s.users[id]; ok {
		return &models.UserBrief{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return &models.UserBrief{ID: id}
}

func (s *MemStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.Conflict("User with this email already exists")
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *MemStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (s *MemStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	u := user
	return &u, nil
}

func (s *MemStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = s.tick()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Author = nil
	stored.Comments = nil
	s.posts[post.ID] = stored
	return nil
}

func (s *MemStore) FindPostByID(_ context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NotFound("Post not found")
	}
	p := post
	p.Author = s.userBrief(p.AuthorID)
	return &p, nil
}

func (s *MemStore) matchPosts(f models.PostFilter) []models.Post {
	matched := []models.Post{}
	for _, post := range s.posts {
		if f.Published != nil && post.Published != *f.Published {
			continue
		}
		if f.AuthorID != nil && post.AuthorID != *f.AuthorID {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (s *MemStore) FindPosts(_ context.Context, f models.PostFilter) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchPosts(f)

	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]models.Post, 0, end-start)
	for _, post := range matched[start:end] {
		post.Author = s.userBrief(post.AuthorID)
		page = append(page, post)
	}
	return page, nil
}

func (s *MemStore) CountPosts(_ context.Context, f models.PostFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matchPosts(f))), nil
}

func (s *MemStore) UpdatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.posts[post.ID]
	if !ok {
		return apperrors.NotFound("Post not found")
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.Published = post.Published
	stored.UpdatedAt = s.tick()
	s.posts[post.ID] = stored
	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *MemStore) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return apperrors.NotFound("Post not found")
	}
	delete(s.posts, id)
	// Cascade, as the store schema does
	for commentID, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}

func (s *MemStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	comment.ID = s.nextID
	comment.CreatedAt = s.tick()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	stored.Author = nil
	stored.Post = nil
	s.comments[comment.ID] = stored
	return nil
}

func (s *MemStore) FindCommentByID(_ context.Context, id int64) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, apperrors.NotFound("Comment not found")
	}
	c := comment
	c.Author = s.userBrief(c.AuthorID)
	if post, ok := s.posts[c.PostID]; ok {
		c.Post = &models.PostBrief{ID: post.ID, Title: post.Title}
	}
	return &c, nil
}

func (s *MemStore) FindCommentsByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []models.Comment{}
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comment.Author = s.userBrief(comment.AuthorID)
			matched = append(matched, comment)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemStore) UpdateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.comments[comment.ID]
	if !ok {
		return apperrors.NotFound("Comment not found")
	}
	stored.Content = comment.Content
	stored.UpdatedAt = s.tick()
	s.comments[comment.ID] = stored
	comment.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *MemStore) DeleteComment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return apperrors.NotFound("Comment not found")
	}
	delete(s.comments, id)
	return nil
}
