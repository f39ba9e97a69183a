// 2026 Craig Tomkow

package backup

import (
	"context"
	"github.com/ctomkow/devdb/db"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Exporter interface {
	ExportDatabase(ctx context.Context, filename string, name string) (*db.Export, error)
}

// Scheduler takes periodic snapshots of one database into a directory and keeps the newest few
type Scheduler struct {
	exporter Exporter
	dir      string
	database string
	queue    *Queue

	now func() time.Time
}

func NewScheduler(exporter Exporter, dir string, database string, keep int) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		dir:      dir,
		database: database,
		queue:    NewQueue(keep),
		now:      time.Now,
	}
}

// Load queues the snapshots already in the directory and deletes the ones beyond the limit
func (s *Scheduler) Load() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	existing, err := Snapshots(s.dir, s.database)
	if err != nil {
		return err
	}

	s.remove(s.queue.Populate(existing))
	for _, name := range s.queue.Names() {
		glog.Info("existing snapshot: " + name)
	}

	return nil
}

// Snapshot exports the database now and deletes the snapshot that fell out of the queue
func (s *Scheduler) Snapshot(ctx context.Context) (*db.Export, error) {
	filename := filepath.Join(s.dir, SnapshotName(s.database, s.now()))

	export, err := s.exporter.ExportDatabase(ctx, filename, s.database)
	if err != nil {
		return nil, err
	}
	glog.Info("snapshot: " + export.Filename)

	if evicted := s.queue.Enqueue(export.Filename); evicted != "" {
		s.remove([]string{evicted})
	}

	return export, nil
}

// Run takes a snapshot on every tick of schedule until ctx is done. schedule is a
// six field cron expression (with seconds) or a descriptor like "@hourly" or "@every 30m".
func (s *Scheduler) Run(ctx context.Context, schedule string) error {
	if err := s.Load(); err != nil {
		return err
	}

	trigger := make(chan bool, 1)
	cj := cron.New()
	err := cj.AddFunc(schedule, func() {
		select {
		case trigger <- true:
		default:
			// previous snapshot still running
		}
	})
	if err != nil {
		return errors.Wrapf(err, "schedule %q", schedule)
	}

	glog.Info("snapshot schedule: " + schedule + ", keeping " + strconv.Itoa(s.queue.size))
	cj.Start()
	defer cj.Stop()

	for {
		select {
		case <-trigger:
			if _, err := s.Snapshot(ctx); err != nil {
				glog.Error(err)
			}

		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Scheduler) remove(filenames []string) {
	for _, filename := range filenames {
		if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
			glog.Error(err)
			continue
		}
		glog.Info("deleted snapshot: " + filename)
	}
}
