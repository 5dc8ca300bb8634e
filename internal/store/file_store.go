package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"crvparking/internal/db"
)

// FileStore keeps the dataset in a single JSON file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (*db.Dataset, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.seedAndSave()
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.Path, err)
	}

	var data db.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("Data file %s is unreadable (%v), reseeding", s.Path, err)
		return s.seedAndSave()
	}
	return &data, nil
}

func (s *FileStore) Save(data *db.Dataset) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(s.Path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileStore) seedAndSave() (*db.Dataset, error) {
	data, err := Seed()
	if err != nil {
		return nil, err
	}
	if err := s.Save(data); err != nil {
		return nil, err
	}
	return data, nil
}
