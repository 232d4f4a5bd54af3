package service

import (
	"context"

	"github.com/Dan9191/blog-service/internal/cache"
	"github.com/Dan9191/blog-service/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// CreatePost persists a new post for the author and invalidates the list
// cache before returning.
func (s *Service) CreatePost(ctx context.Context, title, content string, published bool, authorID int64) (*models.Post, error) {
	post := &models.Post{
		Title:     title,
		Content:   content,
		Published: published,
		AuthorID:  authorID,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.store.FindPostByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.invalidatePostListCaches(ctx)

	s.log.Infof("Post %d created by user %d", created.ID, authorID)
	return created, nil
}

// ListPosts returns a page of posts with pagination metadata, served
// through the list cache. The page and total count are fetched from the
// store concurrently on a miss.
func (s *Service) ListPosts(ctx context.Context, f models.PostFilter) (*models.PostPage, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}

	key := cache.PostListKey(f)
	page, err := cache.ReadThrough(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.PostPage, error) {
		var (
			posts []models.Post
			total int64
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			posts, err = s.store.FindPosts(ctx, f)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = s.store.CountPosts(ctx, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return models.PostPage{}, err
		}

		totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
		return models.PostPage{
			Posts: posts,
			Pagination: models.Pagination{
				CurrentPage:  f.Page,
				TotalPages:   totalPages,
				TotalItems:   total,
				ItemsPerPage: f.Limit,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPostByID returns a post with its author and comments, served through
// the single-resource cache.
func (s *Service) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	key := cache.PostKey(id)
	post, err := cache.ReadThrough(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.Post, error) {
		post, err := s.store.FindPostByID(ctx, id)
		if err != nil {
			return models.Post{}, err
		}
		comments, err := s.store.FindCommentsByPostID(ctx, id)
		if err != nil {
			return models.Post{}, err
		}
		post.Comments = comments
		return *post, nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies the input to the post after the ownership check and
// invalidates the post's caches before returning.
func (s *Service) UpdatePost(ctx context.Context, id int64, input models.UpdatePostInput, userID int64) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(post, userID, "You are not authorized to update this post"); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.invalidatePostCaches(ctx, id)

	s.log.Infof("Post %d updated by user %d", id, userID)
	return post, nil
}

// DeletePost removes the post after the ownership check and invalidates
// the post's caches before returning.
func (s *Service) DeletePost(ctx context.Context, id int64, userID int64) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(post, userID, "You are not authorized to delete this post"); err != nil {
		return nil, err
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return nil, err
	}

	s.invalidatePostCaches(ctx, id)

	s.log.Infof("Post %d deleted by user %d", id, userID)
	return post, nil
}

// ListPublishedPosts returns the latest published posts for the feed.
func (s *Service) ListPublishedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	published := true
	page, err := s.ListPosts(ctx, models.PostFilter{Page: 1, Limit: limit, Published: &published})
	if err != nil {
		return nil, err
	}
	return page.Posts, nil
}
