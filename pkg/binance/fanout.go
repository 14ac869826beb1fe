package binance

import (
	"context"
	"fmt"
	"sync"

	"nakula/pkg/core"
)

// fetchSlices runs fetch once per sub-range, concurrently, and concatenates
// the batches in slice order. All siblings run to completion; the first
// error in slice order fails the whole call.
func fetchSlices[T any](ctx context.Context, slices []core.TimeRange, fetch func(ctx context.Context, slice core.TimeRange) ([]T, error)) ([]T, error) {
	if len(slices) == 1 {
		return fetch(ctx, slices[0])
	}

	results := make([][]T, len(slices))
	errs := make([]error, len(slices))

	var wg sync.WaitGroup
	for i, slice := range slices {
		i, slice := i, slice
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fetch(ctx, slice)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("slice %d of %d: %w", i+1, len(slices), err)
		}
	}

	return concat(results), nil
}

// fetchPages fetches page 1 sequentially to learn the declared item total,
// then fans out the remaining pages concurrently and concatenates in page
// order. fetch must treat its params as its own; page siblings run at once.
func fetchPages[T any](ctx context.Context, perPage int, fetch func(ctx context.Context, page int) (items []T, total int, err error)) ([]T, error) {
	first, total, err := fetch(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}
	if total <= perPage || len(first) == 0 {
		return first, nil
	}

	pages := (total + perPage - 1) / perPage
	results := make([][]T, pages)
	errs := make([]error, pages)
	results[0] = first

	var wg sync.WaitGroup
	for page := 2; page <= pages; page++ {
		page := page
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[page-1], _, errs[page-1] = fetch(ctx, page)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("page %d of %d: %w", i+1, pages, err)
		}
	}

	return concat(results), nil
}

func concat[T any](batches [][]T) []T {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	out := make([]T, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}
