// Package store persists whole record collections in a key-value substrate.
//
// There is no partial update: callers read a collection, change it in memory and write
// it back in full. Writers in different processes are last-write-wins.
package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Collection names a persisted key.
type Collection string

const (
	Patients     Collection = "patients"
	Doctors      Collection = "doctors"
	Appointments Collection = "appointments"
	Invoices     Collection = "invoices"
	Payments     Collection = "payments"
	Users        Collection = "users"
	CurrentUser  Collection = "currentUser"
	Sessions     Collection = "sessions"
)

// Store loads and saves serialized collections. Load returns a nil payload for a
// collection that was never saved.
type Store interface {
	Load(ctx context.Context, collection Collection) ([]byte, error)
	Save(ctx context.Context, collection Collection, payload []byte) error
	Remove(ctx context.Context, collection Collection) error
}

// LoadRecords decodes an array collection. A missing collection is an empty slice.
func LoadRecords[T any](ctx context.Context, s Store, collection Collection) ([]T, error) {
	payload, err := s.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	records := []T{}
	if len(payload) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", collection)
	}
	return records, nil
}

// SaveRecords overwrites an array collection.
func SaveRecords[T any](ctx context.Context, s Store, collection Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", collection)
	}
	return s.Save(ctx, collection, payload)
}

// LoadValue decodes a single-value collection into dst and reports whether it existed.
func LoadValue[T any](ctx context.Context, s Store, collection Collection, dst *T) (bool, error) {
	payload, err := s.Load(ctx, collection)
	if err != nil {
		return false, err
	}
	if len(payload) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, errors.Wrapf(err, "failed to decode %s", collection)
	}
	return true, nil
}

// SaveValue overwrites a single-value collection.
func SaveValue(ctx context.Context, s Store, collection Collection, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", collection)
	}
	return s.Save(ctx, collection, payload)
}
