// 2026 Craig Tomkow

package backup

import (
	"context"
	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"path/filepath"
	"time"
)

// default quiet period after the last write before the dump is considered complete
const DefaultSettle = 2 * time.Second

type Importer interface {
	ReimportDatabase(ctx context.Context, file string, name string) (string, error)
}

// Watcher re-imports a database whenever its dump file is rewritten
type Watcher struct {
	importer Importer
	file     string
	database string

	// wait this long without further writes before re-importing
	Settle time.Duration

	// set while a re-import runs; writes seen meanwhile are dropped
	restoring bool
}

func NewWatcher(importer Importer, file string, database string) *Watcher {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return &Watcher{
		importer: importer,
		file:     filepath.Clean(file),
		database: database,
		Settle:   DefaultSettle,
	}
}

// Run watches until ctx is done. A re-import still running then is waited for, so the
// database connection is free once Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			glog.Error(err)
		}
	}()

	// watch the directory; editors and dump tools often replace the file instead of writing to it
	if err = watcher.Add(filepath.Dir(w.file)); err != nil {
		return err
	}
	glog.Info("watching " + w.file)

	settled := time.NewTimer(w.Settle)
	settled.Stop()
	restored := make(chan error, 1)

	for {
		select {

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.isDumpWrite(event) || w.restoring {
				break
			}
			settled.Reset(w.Settle)

		case <-settled.C:
			if w.restoring {
				break
			}
			w.restoring = true

			go func() {
				_, err := w.importer.ReimportDatabase(ctx, w.file, w.database)
				restored <- err
			}()

		case err := <-restored:
			if err != nil {
				glog.Error(err)
			} else {
				glog.Info("re-imported " + w.file)
			}
			w.restoring = false

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			glog.Error(err)

		case <-ctx.Done():
			if w.restoring {
				if err := <-restored; err != nil {
					glog.Error(err)
				}
				w.restoring = false
			}
			return nil
		}
	}
}

func (w *Watcher) isDumpWrite(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.file {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
