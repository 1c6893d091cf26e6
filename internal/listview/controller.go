package listview

import (
	"context"
	"errors"
	"sync"
)

// ErrActionPending reports a duplicate action on a row whose previous action
// has not resolved yet.
var ErrActionPending = errors.New("an action for this row is already in progress")

// ErrNotFound reports a mutation against an id absent from the held
// collection.
var ErrNotFound = errors.New("record not found")

// Controller holds one screen's collection. Fetches replace the collection
// wholesale; mutations call the API first and only touch the collection after
// the call succeeds. Overlapping refreshes are not serialized: the last
// response to land wins, matching the original console's behavior.
type Controller[T any] struct {
	schema  Schema[T]
	pending PendingSet

	mu        sync.RWMutex
	records   []T
	fetched   bool
	loading   bool
	lastError string
}

func NewController[T any](schema Schema[T]) *Controller[T] {
	return &Controller[T]{schema: schema}
}

// Refresh fetches the full collection and replaces the held one. On failure
// the stale collection is kept and the error recorded for banner display. The
// loading flag clears on every path.
func (c *Controller[T]) Refresh(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	records, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastError = err.Error()
		return err
	}
	c.records = records
	c.fetched = true
	c.lastError = ""
	return nil
}

// EnsureLoaded refreshes only when nothing has been fetched yet, so a page
// render after a mutation reuses the in-place-updated collection instead of
// refetching.
func (c *Controller[T]) EnsureLoaded(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	c.mu.RLock()
	fetched := c.fetched
	c.mu.RUnlock()
	if fetched {
		return nil
	}
	return c.Refresh(ctx, fetch)
}

// Invalidate forces the next EnsureLoaded to refetch.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	c.fetched = false
	c.mu.Unlock()
}

// Loaded reports whether a fetch has ever succeeded.
func (c *Controller[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetched
}

// Loading reports whether a refresh is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the message of the most recent failed refresh, empty
// after a successful one.
func (c *Controller[T]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// View derives the current page from the held collection.
func (c *Controller[T]) View(p Params) View[T] {
	c.mu.RLock()
	records := make([]T, len(c.records))
	copy(records, c.records)
	c.mu.RUnlock()
	return Derive(records, c.schema, p)
}

// Pending reports whether id has an in-flight mutation; the row's control
// renders disabled while true.
func (c *Controller[T]) Pending(id string) bool {
	return c.pending.Contains(id)
}

// Get returns the held record with the given id.
func (c *Controller[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, record := range c.records {
		if c.schema.ID(record) == id {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// Mutate runs call under the row's pending marker and, only on success,
// applies the in-place update to the held record. A failed call leaves the
// collection untouched. The marker is released on every path.
func (c *Controller[T]) Mutate(ctx context.Context, id string, call func(context.Context) error, apply func(*T)) error {
	release, ok := c.pending.Acquire(id)
	if !ok {
		return ErrActionPending
	}
	defer release()

	if err := call(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.records {
		if c.schema.ID(c.records[i]) == id {
			apply(&c.records[i])
			return nil
		}
	}
	return ErrNotFound
}

// Remove runs call under the row's pending marker and, on success, drops the
// record from the held collection.
func (c *Controller[T]) Remove(ctx context.Context, id string, call func(context.Context) error) error {
	release, ok := c.pending.Acquire(id)
	if !ok {
		return ErrActionPending
	}
	defer release()

	if err := call(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.records {
		if c.schema.ID(c.records[i]) == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
