package store

import "crvparking/internal/db"

// MemStore is an in-memory Store used by tests.
type MemStore struct {
	Data  *db.Dataset
	Saves int
}

func NewMemStore(data *db.Dataset) *MemStore {
	return &MemStore{Data: data}
}

func (s *MemStore) Load() (*db.Dataset, error) {
	if s.Data == nil {
		s.Data = &db.Dataset{Settings: db.Settings{TotalSpots: DefaultTotalSpots}}
	}
	return s.Data, nil
}

func (s *MemStore) Save(data *db.Dataset) error {
	s.Data = data
	s.Saves++
	return nil
}
