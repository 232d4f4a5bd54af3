package models

import "time"

// Comment represents a comment on a post, owned by its author.
type Comment struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	PostID    int64      `json:"postId"`
	AuthorID  int64      `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Author    *UserBrief `json:"author,omitempty"`
	Post      *PostBrief `json:"post,omitempty"`
}

// OwnerID reports the author that holds mutation rights over the comment.
func (c *Comment) OwnerID() int64 { return c.AuthorID }
