// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
)

// backupPrefix and backupExt form backup file names like
// smartfarm-20240131-154500.json.
const (
	backupPrefix = "smartfarm-"
	backupExt    = ".json"
)

// DataFileBackupJob creates a job that periodically copies the data file
// into the backup directory and prunes old copies.
//
// The whole application state lives in one JSON file, so a plain file copy
// is a complete backup. Copies are named with a timestamp; the newest keep
// copies are retained and older ones deleted. A missing data file (nothing
// persisted yet) is not an error.
func DataFileBackupJob(docs *document.Store, dir string, interval time.Duration, keep int, logger *zap.Logger) Job {
	return Job{
		Name:     "datafile-backup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			raw, err := os.ReadFile(docs.Path())
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read data file: %w", err)
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create backup directory: %w", err)
			}

			name := backupPrefix + time.Now().UTC().Format("20060102-150405") + backupExt
			dest := filepath.Join(dir, name)
			if err := os.WriteFile(dest, raw, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			pruned, err := pruneBackups(dir, keep)
			if err != nil {
				return err
			}

			logger.Info("backed up data file",
				zap.String("backup", dest),
				zap.Int("pruned", pruned))
			return nil
		},
	}
}

// pruneBackups deletes the oldest backup files beyond keep.
// keep <= 0 retains everything.
func pruneBackups(dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("list backup directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupExt) {
			names = append(names, name)
		}
	}
	if len(names) <= keep {
		return 0, nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)

	pruned := 0
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return pruned, fmt.Errorf("prune backup %s: %w", name, err)
		}
		pruned++
	}
	return pruned, nil
}
