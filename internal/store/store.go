// Package store is the data-access layer. Every single-document entity
// (profile, meal plan, grocery list, chat history, recommendation) keeps
// exactly one row per email, written with an atomic insert-or-replace so
// concurrent writers resolve to last-write-wins instead of duplicating.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStorageUnavailable reports a store connectivity or operation failure.
// Not-found is never an error; loads return a nil result instead.
var ErrStorageUnavailable = errors.New("storage unavailable")

// RecordStore provides per-user upsert and lookup for each document type
// and append/aggregate operations for calorie entries.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a new RecordStore backed by the given database.
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// storageErr wraps a driver error so callers can distinguish connectivity
// failures from normal outcomes without seeing the raw driver error text.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}
