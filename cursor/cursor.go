// Package cursor provides ordered step navigation over a server-paged record
// collection. The page is fetched once per source key and memoized; the
// cursor is deliberately not a streaming view — after any mutation of the
// underlying collection the caller must Invalidate and let the next
// operation refetch.
package cursor

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyCollection means the backing page has no records.
	ErrEmptyCollection = errors.New("collection is empty")
	// ErrNotFound means the given record id is not on the memoized page.
	ErrNotFound = errors.New("record not found")
	// ErrNoNextRecord means the cursor is already on the final record.
	ErrNoNextRecord = errors.New("no next record")
	// ErrNoPreviousRecord means the cursor is already on the first record.
	ErrNoPreviousRecord = errors.New("no previous record")
)

// Record is any domain record with a string identity.
type Record interface {
	RecordID() string
}

// PageFunc fetches the backing page. It is called at most once per source
// key until the cursor is invalidated.
type PageFunc[T Record] func(ctx context.Context) ([]T, error)

const indexUnset = -1

// Cursor is a stateful pointer into a memoized page of records.
type Cursor[T Record] struct {
	lock      sync.Mutex
	sourceKey string
	fetch     PageFunc[T]
	page      []T
	loaded    bool
	index     int
}

// New creates a cursor over the query identified by sourceKey. Nothing is
// fetched until the first navigation operation.
func New[T Record](sourceKey string, fetch PageFunc[T]) *Cursor[T] {
	return &Cursor[T]{sourceKey: sourceKey, fetch: fetch, index: indexUnset}
}

// Rebind points the cursor at a different query. A changed source key drops
// the memoized page; rebinding to the same key keeps it.
func (c *Cursor[T]) Rebind(sourceKey string, fetch PageFunc[T]) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if sourceKey != c.sourceKey {
		c.page = nil
		c.loaded = false
		c.index = indexUnset
	}
	c.sourceKey = sourceKey
	c.fetch = fetch
}

// Invalidate drops the memoized page, forcing the next operation to refetch.
// Call it after any create, update, or delete that changes membership or
// ordering of the underlying collection.
func (c *Cursor[T]) Invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.page = nil
	c.loaded = false
	c.index = indexUnset
}

// First moves to the first record.
func (c *Cursor[T]) First(ctx context.Context) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	var zero T

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	if len(c.page) == 0 {
		return zero, ErrEmptyCollection
	}
	c.index = 0
	return c.page[0], nil
}

// Last moves to the final record.
func (c *Cursor[T]) Last(ctx context.Context) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	var zero T

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	if len(c.page) == 0 {
		return zero, ErrEmptyCollection
	}
	c.index = len(c.page) - 1
	return c.page[c.index], nil
}

// Next locates currentID on the page and advances one record.
func (c *Cursor[T]) Next(ctx context.Context, currentID string) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	var zero T

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	i := c.indexOfLocked(currentID)
	if i < 0 {
		return zero, errors.Wrap(ErrNotFound, currentID)
	}
	if i >= len(c.page)-1 {
		return zero, ErrNoNextRecord
	}
	c.index = i + 1
	return c.page[c.index], nil
}

// Previous locates currentID on the page and steps back one record.
func (c *Cursor[T]) Previous(ctx context.Context, currentID string) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	var zero T

	if err := c.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	i := c.indexOfLocked(currentID)
	if i < 0 {
		return zero, errors.Wrap(ErrNotFound, currentID)
	}
	if i == 0 {
		return zero, ErrNoPreviousRecord
	}
	c.index = i - 1
	return c.page[c.index], nil
}

// HasNext reports whether Next(currentID) would succeed against the
// memoized page. It is a pure check: the index never moves and nothing is
// fetched. Returns false when the page is not loaded or the id is absent.
func (c *Cursor[T]) HasNext(currentID string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.loaded {
		return false
	}
	i := c.indexOfLocked(currentID)
	return i >= 0 && i < len(c.page)-1
}

// HasPrevious is the non-mutating counterpart for Previous.
func (c *Cursor[T]) HasPrevious(currentID string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.loaded {
		return false
	}
	return c.indexOfLocked(currentID) > 0
}

// Index returns the current position, or -1 when unset.
func (c *Cursor[T]) Index() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.index
}

// SourceKey identifies which backend query produced the memoized page.
func (c *Cursor[T]) SourceKey() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.sourceKey
}

func (c *Cursor[T]) ensureLoadedLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	page, err := c.fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "[cursor] fetch page")
	}
	c.page = page
	c.loaded = true
	c.index = indexUnset
	return nil
}

func (c *Cursor[T]) indexOfLocked(id string) int {
	for i, record := range c.page {
		if record.RecordID() == id {
			return i
		}
	}
	return -1
}
