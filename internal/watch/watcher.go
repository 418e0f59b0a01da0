package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkfix/internal/linkfix"
	"git.home.luguber.info/inful/mdlinkfix/internal/logfields"
	"git.home.luguber.info/inful/mdlinkfix/internal/metrics"
)

// Watcher re-runs the link fixer whenever the document tree changes.
//
// Events are debounced: a burst of filesystem changes triggers a single fix
// pass once the tree has been quiet for the configured window. Fix passes
// themselves emit write events, but the engine is idempotent so the follow-up
// pass finds nothing to change and the loop settles.
type Watcher struct {
	cfg       *config.Config
	fixer     *linkfix.Fixer
	collector *metrics.Collector // nil when metrics are disabled
}

// New creates a Watcher. collector may be nil.
func New(cfg *config.Config, fixer *linkfix.Fixer, collector *metrics.Collector) *Watcher {
	return &Watcher{cfg: cfg, fixer: fixer, collector: collector}
}

// Run performs an initial fix pass, then watches root until ctx is cancelled.
// A missing root is a fatal environment error, as in one-shot mode.
func (w *Watcher) Run(ctx context.Context, root string) error {
	// The initial pass also validates the root before any watch is set up.
	if err := w.runOnce(root); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}
	defer func() {
		if closeErr := fsw.Close(); closeErr != nil {
			slog.Error("Error closing file watcher", logfields.Error(closeErr))
		}
	}()

	if err := addTree(fsw, root); err != nil {
		return err
	}

	debounce := w.cfg.Watch.DebounceDuration()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	slog.Info("Watching document tree", logfields.Root(root), slog.Duration("debounce", debounce))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories must be registered before their contents can
			// be observed.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := addTree(fsw, event.Name); addErr != nil {
						slog.Error("Failed to watch new directory",
							logfields.Doc(event.Name), logfields.Error(addErr))
					}
				}
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(watchErr))

		case <-timer.C:
			if err := w.runOnce(root); err != nil {
				return err
			}
		}
	}
}

// runOnce executes a single fix pass tagged with a run id.
func (w *Watcher) runOnce(root string) error {
	runID := uuid.NewString()
	slog.Info("Running fix pass", logfields.RunID(runID), logfields.Root(root))

	result, err := w.fixer.FixTree(root)
	if err != nil {
		return err
	}

	slog.Info("Fix pass complete",
		logfields.RunID(runID),
		logfields.Found(result.Found),
		logfields.Fixed(result.FixedCount()),
		logfields.Failed(len(result.Errors)))

	if w.collector != nil {
		w.collector.RecordRun(result.Found, result.FixedCount(), len(result.Errors))
	}
	return nil
}

// relevant filters events down to documents and directory lifecycle changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && event.Op&^fsnotify.Chmod == 0 {
		return false
	}
	if strings.HasSuffix(event.Name, w.cfg.Links.Extension) {
		return true
	}
	// Directory creates/removes matter for watch registration and renames.
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}

// addTree registers dir and every directory below it with the watcher.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if addErr := fsw.Add(path); addErr != nil {
			return errors.WrapError(addErr, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", path).
				Build()
		}
		return nil
	})
}
