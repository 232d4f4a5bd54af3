package service

import (
	"context"

	"github.com/Dan9191/blog-service/internal/cache"
	"github.com/Dan9191/blog-service/internal/models"
)

// CreateComment creates a comment on an existing post. The cached post
// detail embeds comments, so the post's single-resource key is dropped.
func (s *Service) CreateComment(ctx context.Context, postID int64, content string, authorID int64) (*models.Comment, error) {
	if _, err := s.store.FindPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.store.FindCommentByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	s.invalidatePostDetail(ctx, postID)

	s.log.Infof("Comment %d created on post %d by user %d", created.ID, postID, authorID)
	return created, nil
}

// ListCommentsByPost returns a post's comments, newest first.
func (s *Service) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.store.FindPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.store.FindCommentsByPostID(ctx, postID)
}

// GetCommentByID returns a comment with its author and post projections.
func (s *Service) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	return s.store.FindCommentByID(ctx, id)
}

// UpdateComment changes a comment's content after the ownership check.
func (s *Service) UpdateComment(ctx context.Context, id int64, content string, userID int64) (*models.Comment, error) {
	comment, err := s.store.FindCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(comment, userID, "You are not authorized to update this comment"); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidatePostDetail(ctx, comment.PostID)

	s.log.Infof("Comment %d updated by user %d", id, userID)
	return comment, nil
}

// DeleteComment removes a comment after the ownership check.
func (s *Service) DeleteComment(ctx context.Context, id int64, userID int64) (*models.Comment, error) {
	comment, err := s.store.FindCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(comment, userID, "You are not authorized to delete this comment"); err != nil {
		return nil, err
	}

	if err := s.store.DeleteComment(ctx, id); err != nil {
		return nil, err
	}

	s.invalidatePostDetail(ctx, comment.PostID)

	s.log.Infof("Comment %d deleted by user %d", id, userID)
	return comment, nil
}

// invalidatePostDetail drops only the post's single-resource key. Comment
// writes change the cached post detail but cannot affect list entries,
// which carry no comment data.
func (s *Service) invalidatePostDetail(ctx context.Context, postID int64) {
	if err := s.cache.Delete(ctx, cache.PostKey(postID)); err != nil {
		s.log.Warnf("Failed to invalidate post cache for %d: %v", postID, err)
	}
}
