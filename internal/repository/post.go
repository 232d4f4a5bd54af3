package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/models"
)

// CreatePost creates a new post in the database
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO blog.posts (title, content, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindPostByID retrieves a post with its author projection
func (r *Repository) FindPostByID(ctx context.Context, id int64) (*models.Post, error) {
	post := &models.Post{Author: &models.UserBrief{}}
	query := `
		SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
		       u.id, u.name, u.email
		FROM blog.posts p
		JOIN blog.users u ON u.id = p.author_id
		WHERE p.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Name, &post.Author.Email)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// postFilterWhere builds the WHERE clause for a post filter.
func postFilterWhere(f models.PostFilter) (string, []interface{}) {
	where := ""
	args := []interface{}{}
	if f.Published != nil {
		args = append(args, *f.Published)
		where += fmt.Sprintf(" AND p.published = $%d", len(args))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		where += fmt.Sprintf(" AND p.author_id = $%d", len(args))
	}
	return where, args
}

// FindPosts retrieves a page of posts matching the filter, newest first
func (r *Repository) FindPosts(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	where, args := postFilterWhere(f)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
		       u.id, u.name, u.email
		FROM blog.posts p
		JOIN blog.users u ON u.id = p.author_id
		WHERE 1=1%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post := models.Post{Author: &models.UserBrief{}}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt,
			&post.Author.ID, &post.Author.Name, &post.Author.Email); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// CountPosts counts the posts matching the filter
func (r *Repository) CountPosts(ctx context.Context, f models.PostFilter) (int64, error) {
	where, args := postFilterWhere(f)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM blog.posts p WHERE 1=1%s`, where)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// UpdatePost persists the post's mutable fields
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE blog.posts
		SET title = $1, content = $2, published = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.ID).
		Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("Post not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// DeletePost removes a post. Dependent comments are removed by the
// store's ON DELETE CASCADE constraint.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog.posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("Post not found")
	}
	return nil
}
