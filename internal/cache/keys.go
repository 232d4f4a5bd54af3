package cache

import (
	"fmt"
	"strconv"

	"github.com/Dan9191/blog-service/internal/models"
)

// PostListPrefix namespaces every post listing key. List keys are
// parameterized by arbitrary filter combinations, so an arbitrary post
// write can affect any of them; invalidation drops the whole namespace.
const PostListPrefix = "posts:list:"

// anyValue marks an unset filter in a list key. Unset filters are
// rendered, not omitted, so distinct filter combinations never collide.
const anyValue = "any"

// PostKey derives the single-resource cache key for a post.
func PostKey(postID int64) string {
	return "post:" + strconv.FormatInt(postID, 10)
}

// PostListKey derives the cache key for a post listing from its
// pagination and filter parameters, in a fixed order.
func PostListKey(f models.PostFilter) string {
	published := anyValue
	if f.Published != nil {
		published = strconv.FormatBool(*f.Published)
	}
	author := anyValue
	if f.AuthorID != nil {
		author = strconv.FormatInt(*f.AuthorID, 10)
	}
	return fmt.Sprintf("%spage:%d:limit:%d:published:%s:author:%s",
		PostListPrefix, f.Page, f.Limit, published, author)
}
