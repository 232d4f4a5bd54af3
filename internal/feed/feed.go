// Package feed renders an RSS 2.0 feed of published posts.
package feed

import (
	"fmt"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/beevik/etree"
)

// Builder renders feeds with absolute links rooted at the site URL.
type Builder struct {
	siteURL string
	title   string
}

// NewBuilder creates a feed builder for the given site URL.
func NewBuilder(siteURL string) *Builder {
	return &Builder{siteURL: siteURL, title: "Blog API"}
}

// Build renders the posts as an RSS 2.0 document.
func (b *Builder) Build(posts []models.Post) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(b.title)
	channel.CreateElement("link").SetText(b.siteURL)
	channel.CreateElement("description").SetText("Latest published posts")
	channel.CreateElement("lastBuildDate").SetText(time.Now().Format(time.RFC1123Z))

	for _, post := range posts {
		link := fmt.Sprintf("%s/api/posts/%d", b.siteURL, post.ID)

		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(post.Title)
		item.CreateElement("link").SetText(link)
		item.CreateElement("description").SetText(post.Content)
		if post.Author != nil {
			item.CreateElement("author").SetText(post.Author.Email)
		}
		item.CreateElement("pubDate").SetText(post.CreatedAt.Format(time.RFC1123Z))
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(link)
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return data, nil
}
