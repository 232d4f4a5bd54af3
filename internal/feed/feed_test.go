package feed

import (
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRendersItems(t *testing.T) {
	b := NewBuilder("https://blog.example.com")
	posts := []models.Post{
		{
			ID:        1,
			Title:     "Hello",
			Content:   "First post",
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Author:    &models.UserBrief{Email: "author@example.com"},
		},
		{
			ID:        2,
			Title:     "Second",
			Content:   "Another post",
			CreatedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		},
	}

	data, err := b.Build(posts)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	rss := doc.SelectElement("rss")
	require.NotNil(t, rss)
	assert.Equal(t, "2.0", rss.SelectAttrValue("version", ""))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Hello", first.SelectElement("title").Text())
	assert.Equal(t, "https://blog.example.com/api/posts/1", first.SelectElement("link").Text())
	assert.Equal(t, "author@example.com", first.SelectElement("author").Text())
	assert.NotEmpty(t, first.SelectElement("pubDate").Text())

	// Items without an author projection omit the element
	assert.Nil(t, items[1].SelectElement("author"))
}

func TestBuildEmptyFeed(t *testing.T) {
	b := NewBuilder("https://blog.example.com")

	data, err := b.Build(nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	assert.Empty(t, doc.FindElements("//channel/item"))
	assert.Equal(t, "Blog API", doc.FindElement("//channel/title").Text())
}
