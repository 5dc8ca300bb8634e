package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// BackupService snapshots the data file. It runs on a cron schedule from the
// main process; the store has no durability guarantee beyond last-write-wins,
// so periodic copies are the only way back from a bad write.
type BackupService struct {
	DataFile  string
	BackupDir string
}

func NewBackupService(dataFile, backupDir string) *BackupService {
	return &BackupService{DataFile: dataFile, BackupDir: backupDir}
}

// Run copies the current data file into the backup directory under a
// timestamped name. A missing data file is not an error; there is simply
// nothing to back up yet.
func (s *BackupService) Run() error {
	raw, err := os.ReadFile(s.DataFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("Cron Job: no data file yet, skipping backup")
			return nil
		}
		return fmt.Errorf("cron job: failed to read data file: %w", err)
	}

	if err := os.MkdirAll(s.BackupDir, 0755); err != nil {
		return fmt.Errorf("cron job: failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("parking-%s.json", time.Now().UTC().Format("20060102-150405"))
	target := filepath.Join(s.BackupDir, name)
	if err := os.WriteFile(target, raw, 0644); err != nil {
		return fmt.Errorf("cron job: failed to write backup %s: %w", target, err)
	}

	log.Printf("Cron Job: dataset backed up to %s", target)
	return nil
}
