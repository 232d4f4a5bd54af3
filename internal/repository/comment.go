package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/models"
)

// CreateComment creates a new comment in the database
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO blog.comments (content, post_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, comment.Content, comment.PostID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindCommentByID retrieves a comment with its author and post projections
func (r *Repository) FindCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{Author: &models.UserBrief{}, Post: &models.PostBrief{}}
	query := `
		SELECT c.id, c.content, c.post_id, c.author_id, c.created_at, c.updated_at,
		       u.id, u.name, u.email,
		       p.id, p.title
		FROM blog.comments c
		JOIN blog.users u ON u.id = c.author_id
		JOIN blog.posts p ON p.id = c.post_id
		WHERE c.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Content, &comment.PostID, &comment.AuthorID,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.Author.ID, &comment.Author.Name, &comment.Author.Email,
		&comment.Post.ID, &comment.Post.Title)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

// FindCommentsByPostID retrieves a post's comments with author
// projections, newest first
func (r *Repository) FindCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.content, c.post_id, c.author_id, c.created_at, c.updated_at,
		       u.id, u.name, u.email
		FROM blog.comments c
		JOIN blog.users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment := models.Comment{Author: &models.UserBrief{}}
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.PostID, &comment.AuthorID,
			&comment.CreatedAt, &comment.UpdatedAt,
			&comment.Author.ID, &comment.Author.Name, &comment.Author.Email); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment persists the comment's content
func (r *Repository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE blog.comments
		SET content = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, comment.Content, comment.ID).
		Scan(&comment.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("Comment not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment
func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog.comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("Comment not found")
	}
	return nil
}
