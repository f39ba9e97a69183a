// 2026 Craig Tomkow

package backup

import (
	"github.com/ctomkow/devdb/util"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const snapshotSuffix = ".sql.gz"

// SnapshotName returns the filename of a snapshot of database taken at t
func SnapshotName(database string, t time.Time) string {
	return database + "-" + util.TimestampOf(t).Timestamp() + snapshotSuffix
}

// parseSnapshot returns the time encoded in a snapshot filename of database
func parseSnapshot(database string, filename string) (time.Time, bool) {
	prefix := database + "-"
	if !strings.HasPrefix(filename, prefix) || !strings.HasSuffix(filename, snapshotSuffix) {
		return time.Time{}, false
	}

	timeStr := strings.TrimSuffix(strings.TrimPrefix(filename, prefix), snapshotSuffix)
	taken, err := util.ParseTimestamp(timeStr)
	if err != nil {
		return time.Time{}, false
	}

	return taken, true
}

// Snapshots returns the snapshot filenames of database in dir, ordered oldest to newest.
// Files that don't follow the snapshot naming are ignored.
func Snapshots(dir string, database string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type snapshot struct {
		name  string
		taken time.Time
	}
	var found []snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if taken, ok := parseSnapshot(database, entry.Name()); ok {
			found = append(found, snapshot{name: entry.Name(), taken: taken})
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].taken.Before(found[j].taken) })

	names := make([]string, 0, len(found))
	for _, s := range found {
		names = append(names, filepath.Join(dir, s.name))
	}

	return names, nil
}
