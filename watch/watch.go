// Package watch re-runs the asset checks whenever the filesystem under the
// project root changes, until every requirement is present.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/assetcheck/asset"
	"github.com/c360studio/assetcheck/checker"
	"github.com/c360studio/assetcheck/report"
)

// Options configures a watch run
type Options struct {
	// Root is the project root the requirements are resolved against
	Root         string
	Requirements []asset.Requirement
	Reporter     *report.Reporter

	// Debounce is how long to wait for more changes before re-checking
	Debounce time.Duration

	// OnRun is called after every completed check run
	OnRun func(report.Summary)

	Logger *slog.Logger
}

// Run checks once and, while anything is missing, waits for changes and
// checks again. It returns the latest summary once everything is present or
// when ctx is cancelled.
func Run(ctx context.Context, opts Options) (report.Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	summary, err := runOnce(opts)
	if err != nil || summary.OK() {
		return summary, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return summary, err
	}
	defer fsw.Close()

	addWatches(fsw, Dirs(opts.Root, opts.Requirements), logger)
	logger.Info("Watching for asset changes", "root", opts.Root, "debounce", debounce)

	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return summary, nil

		case event, ok := <-fsw.Events:
			if !ok {
				return summary, nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			pending = true
			logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())

		case err, ok := <-fsw.Errors:
			if !ok {
				return summary, nil
			}
			logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false

			summary, err = runOnce(opts)
			if err != nil || summary.OK() {
				return summary, err
			}

			// Newly created directories become watchable
			addWatches(fsw, Dirs(opts.Root, opts.Requirements), logger)
		}
	}
}

func runOnce(opts Options) (report.Summary, error) {
	summary, err := opts.Reporter.Run(opts.Root, opts.Requirements)
	if err == nil && opts.OnRun != nil {
		opts.OnRun(summary)
	}
	return summary, err
}

// Dirs returns the directories whose changes can affect reqs: for each
// requirement, the nearest existing directory at or above the directory that
// holds it, never above root.
func Dirs(root string, reqs []asset.Requirement) []string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, req := range reqs {
		target, err := checker.Resolve(absRoot, req.Path)
		if err != nil {
			continue
		}

		dir := filepath.Dir(target)
		if req.IsDirectory() {
			dir = target
		}
		dir = nearestDir(absRoot, dir)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	slices.Sort(dirs)
	return dirs
}

func nearestDir(root, dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		if dir == root || !strings.HasPrefix(dir, root) {
			return ""
		}
		dir = filepath.Dir(dir)
	}
}

func addWatches(fsw *fsnotify.Watcher, dirs []string, logger *slog.Logger) {
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Failed to watch directory",
				"path", dir,
				"error", err)
		} else {
			logger.Debug("Watching directory", "path", dir)
		}
	}
}
