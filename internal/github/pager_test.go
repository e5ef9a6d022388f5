package github

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPages serves pages of ints from memory, recording every requested page.
func stubPages(pages [][]int, requested *[]int) PageFunc[int] {
	return func(_ context.Context, opts github.ListOptions) ([]int, *github.Response, error) {
		page := opts.Page
		if page == 0 {
			page = 1
		}
		*requested = append(*requested, page)
		resp := &github.Response{}
		if page < len(pages) {
			resp.NextPage = page + 1
		}
		return pages[page-1], resp, nil
	}
}

func TestPages(t *testing.T) {
	ctx := context.Background()
	pages := [][]int{{1, 2}, {3, 4}, {5, 6}}

	t.Run("exhausts every page", func(t *testing.T) {
		var requested []int

		items, err := Collect(Pages(ctx, 2, stubPages(pages, &requested)))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, items)
		assert.Equal(t, []int{1, 2, 3}, requested)
	})

	t.Run("passes the page size through", func(t *testing.T) {
		var perPage int
		fetch := func(_ context.Context, opts github.ListOptions) ([]int, *github.Response, error) {
			perPage = opts.PerPage
			return nil, &github.Response{}, nil
		}

		items, err := Collect(Pages(ctx, 42, fetch))

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 42, perPage)
	})

	t.Run("fetches lazily", func(t *testing.T) {
		var requested []int

		for item, err := range Pages(ctx, 2, stubPages(pages, &requested)) {
			require.NoError(t, err)
			if item == 2 {
				break
			}
		}

		assert.Equal(t, []int{1}, requested)
	})

	t.Run("restarts from the first page on each range", func(t *testing.T) {
		var requested []int
		seq := Pages(ctx, 2, stubPages(pages, &requested))

		first, err := Collect(seq)
		require.NoError(t, err)
		second, err := Collect(seq)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, requested)
	})

	t.Run("stops at the first error and returns nothing", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		fetch := func(_ context.Context, opts github.ListOptions) ([]int, *github.Response, error) {
			calls++
			if opts.Page == 2 {
				return nil, nil, boom
			}
			return []int{1, 2}, &github.Response{NextPage: 2}, nil
		}

		items, err := Collect(Pages(ctx, 2, fetch))

		assert.ErrorIs(t, err, boom)
		assert.Nil(t, items)
		assert.Equal(t, 2, calls)
	})

	t.Run("treats a missing response as the last page", func(t *testing.T) {
		fetch := func(_ context.Context, _ github.ListOptions) ([]int, *github.Response, error) {
			return []int{7}, nil, nil
		}

		items, err := Collect(Pages(ctx, 2, fetch))

		require.NoError(t, err)
		assert.Equal(t, []int{7}, items)
	})
}
