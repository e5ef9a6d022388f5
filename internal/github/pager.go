package github

import (
	"context"
	"iter"

	"github.com/google/go-github/v62/github"
)

// PageFunc fetches a single page of a listing endpoint.
type PageFunc[T any] func(ctx context.Context, opts github.ListOptions) ([]T, *github.Response, error)

// Pages returns a lazy sequence over every item of a paginated listing.
// A page is only requested once the previous one has been consumed, and each
// range over the sequence starts again from the first page. Iteration stops at
// the last page or after yielding the first error.
func Pages[T any](ctx context.Context, perPage int, fetch PageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		opts := github.ListOptions{PerPage: perPage}
		for {
			items, resp, err := fetch(ctx, opts)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			if resp == nil || resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// Collect drains seq into a slice, preserving order. Nothing is returned on error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var all []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
	return all, nil
}
