// Package store implements the data-access contract of the till: the whole
// dataset is read and written as one blob, last write wins.
package store

import "crvparking/internal/db"

type Store interface {
	// Load returns the persisted dataset, or a freshly seeded one if none
	// exists or the stored blob is unreadable.
	Load() (*db.Dataset, error)
	// Save replaces the persisted dataset with the given one.
	Save(data *db.Dataset) error
}
