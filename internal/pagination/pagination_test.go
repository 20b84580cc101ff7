package pagination

import (
	"testing"

	"github.com/4oBuko/tag-browser/internal/query"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("middle page keeps the filter in every link", func(t *testing.T) {
		control := New(3, 25, 2, query.State{Page: 2, Filter: "music"})

		assert.Equal(t, 3, control.Pages)
		assert.Equal(t, 25, control.Items)
		assert.Equal(t, "/?filter=music&page=1", control.First.Href)
		assert.Equal(t, "/?filter=music&page=1", control.Prev.Href)
		assert.Equal(t, "/?filter=music&page=3", control.Next.Href)
		assert.Equal(t, "/?filter=music&page=3", control.Last.Href)
		assert.Len(t, control.Links(), 4)
	})

	t.Run("first page disables backwards links", func(t *testing.T) {
		control := New(3, 25, 1, query.State{Page: 1})
		assert.True(t, control.First.Disabled)
		assert.True(t, control.Prev.Disabled)
		assert.Empty(t, control.Prev.Href)
		assert.False(t, control.Next.Disabled)
	})

	t.Run("last page disables forward links", func(t *testing.T) {
		control := New(3, 25, 3, query.State{Page: 3})
		assert.True(t, control.Next.Disabled)
		assert.True(t, control.Last.Disabled)
		assert.False(t, control.Prev.Disabled)
	})

	t.Run("page past the end only links back into range", func(t *testing.T) {
		control := New(3, 25, 7, query.State{Page: 7, Filter: "music"})
		assert.True(t, control.Prev.Disabled)
		assert.Empty(t, control.Prev.Href)
		assert.True(t, control.Next.Disabled)
		assert.False(t, control.First.Disabled)
		assert.False(t, control.Last.Disabled)
		assert.Equal(t, "/?filter=music&page=3", control.Last.Href)
	})

	t.Run("empty result still renders one page", func(t *testing.T) {
		control := New(0, 0, 1, query.State{Page: 1, Filter: "nothing"})
		assert.Equal(t, 1, control.Pages)
		assert.Equal(t, 0, control.Items)
		assert.True(t, control.Next.Disabled)
	})
}
