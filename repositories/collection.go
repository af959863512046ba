package repositories

import (
	"SolidarityHospital/store"
	"context"
	"errors"
	"sync"
)

// ErrRecordNotFound is returned when an id does not match any record of a collection.
var ErrRecordNotFound = errors.New("record not found")

// collection is the read-all, mutate, write-all access shared by the repositories. The
// mutex serializes read-modify-write cycles within this process only.
type collection[T any] struct {
	store store.Store
	name  store.Collection
	id    func(*T) string
	mu    sync.Mutex
}

func newCollection[T any](s store.Store, name store.Collection, id func(*T) string) *collection[T] {
	return &collection[T]{store: s, name: name, id: id}
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	return store.LoadRecords[T](ctx, c.store, c.name)
}

func (c *collection[T]) find(ctx context.Context, id string) (*T, error) {
	records, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if c.id(&records[i]) == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (c *collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	records, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	matched := []T{}
	for i := range records {
		if keep(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return matched, nil
}

func (c *collection[T]) append(ctx context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.all(ctx)
	if err != nil {
		return err
	}
	return store.SaveRecords(ctx, c.store, c.name, append(records, record))
}

// modify applies fn to the record with the given id and writes the collection back.
func (c *collection[T]) modify(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if c.id(&records[i]) != id {
			continue
		}
		if err := fn(&records[i]); err != nil {
			return nil, err
		}
		if err := store.SaveRecords(ctx, c.store, c.name, records); err != nil {
			return nil, err
		}
		updated := records[i]
		return &updated, nil
	}
	return nil, ErrRecordNotFound
}

// remove deletes the record with the given id and reports whether it existed.
func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.all(ctx)
	if err != nil {
		return false, err
	}
	kept := records[:0]
	for i := range records {
		if c.id(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	return true, store.SaveRecords(ctx, c.store, c.name, kept)
}
