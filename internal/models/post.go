package models

import "time"

// Post represents a blog post owned by its author.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Published bool       `json:"published"`
	AuthorID  int64      `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Author    *UserBrief `json:"author,omitempty"`
	Comments  []Comment  `json:"comments,omitempty"`
}

// OwnerID reports the author that holds mutation rights over the post.
func (p *Post) OwnerID() int64 { return p.AuthorID }

// PostBrief is the minimal post projection embedded in comments.
type PostBrief struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Brief returns the minimal projection of the post.
func (p *Post) Brief() *PostBrief {
	return &PostBrief{ID: p.ID, Title: p.Title}
}

// PostFilter describes a paginated post listing query.
// Nil Published/AuthorID mean no filtering on that dimension.
type PostFilter struct {
	Page      int
	Limit     int
	Published *bool
	AuthorID  *int64
}

// Pagination is the metadata returned alongside a page of posts.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// PostPage is a page of posts with its pagination metadata.
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// UpdatePostInput carries the mutable post fields; nil fields keep the
// current value.
type UpdatePostInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}
