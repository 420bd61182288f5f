package sync

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/codec/gtk"
	"github.com/placesync/placesync/internal/codec/kde"
	"github.com/placesync/placesync/internal/codec/qt"
	"github.com/placesync/placesync/internal/logging"
	"github.com/placesync/placesync/internal/model"
	"github.com/placesync/placesync/internal/util"
)

// ErrSourceMissing indicates the declared source store does not exist.
// The run aborts before any target is touched.
var ErrSourceMissing = errors.New("source store missing")

// ErrFilesystem indicates a directory creation or file write failure on
// a target store. Fatal for that target only.
var ErrFilesystem = errors.New("filesystem error")

// Options configures a sync run.
type Options struct {
	// BaseDir is the directory the store paths resolve under.
	// Defaults to the user's home directory.
	BaseDir string

	// DryRun decodes and encodes but writes nothing.
	DryRun bool

	// Paths overrides the store file path per backend. Unset backends
	// use the fixed well-known locations.
	Paths map[model.Backend]string
}

// DefaultOptions returns the default sync options.
func DefaultOptions() Options {
	return Options{}
}

// Syncer defines the interface for bookmark synchronization.
type Syncer interface {
	// Sync projects the source backend's bookmarks into the other two
	// stores. The returned Result reports per-target outcomes; err is
	// non-nil only when the run aborted before any write (missing or
	// malformed source).
	Sync(source model.Backend, opts Options) (*Result, error)
}

// Synchronizer implements the Syncer interface.
type Synchronizer struct{}

// New creates a new Synchronizer.
func New() *Synchronizer {
	return &Synchronizer{}
}

// Sync performs a one-way projection from the source store to the other
// two stores. Each target is written atomically and independently; a
// failed target never rolls back an already-written one.
func (s *Synchronizer) Sync(source model.Backend, opts Options) (*Result, error) {
	if !source.IsValid() {
		return nil, fmt.Errorf("unknown backend %q", source)
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = util.HomeDir()
	}

	codecs := map[model.Backend]codec.Codec{
		model.GTK: gtk.New(baseDir),
		model.KDE: kde.New(baseDir),
		model.Qt:  qt.New(baseDir),
	}
	paths := make(map[model.Backend]string, len(codecs))
	for _, b := range model.AllBackends() {
		if p, ok := opts.Paths[b]; ok && p != "" {
			paths[b] = p
		} else {
			paths[b] = util.StorePath(b, baseDir)
		}
	}

	logging.Debug("starting sync run",
		logging.Backend(string(source)),
		slog.String("base_dir", baseDir),
		slog.Bool("dry_run", opts.DryRun),
	)

	sourcePath := paths[source]
	// #nosec G304 - sourcePath resolves under the caller-supplied base directory
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, sourcePath)
		}
		return nil, fmt.Errorf("read %s: %w", sourcePath, err)
	}

	list, warnings, err := codecs[source].Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s store: %w", source, err)
	}
	for _, w := range warnings {
		logging.Warn("skipped source entry",
			logging.Backend(string(source)),
			slog.String("entry", w.Entry),
			slog.String("detail", w.Detail),
		)
	}

	result := &Result{
		Source:   source,
		Count:    len(list),
		DryRun:   opts.DryRun,
		Warnings: warnings,
	}

	for _, target := range model.AllBackends() {
		if target == source {
			result.Targets = append(result.Targets, TargetResult{
				Backend: target,
				Path:    paths[target],
				Status:  StatusSkipped,
				Message: "source",
			})
			continue
		}
		result.Targets = append(result.Targets, s.writeTarget(codecs[target], paths[target], list, opts.DryRun))
	}

	logging.Debug("sync run complete",
		logging.Backend(string(source)),
		logging.Count(result.Count),
		slog.Int("failed", len(result.Failed())),
	)

	return result, nil
}

// rewriter is implemented by codecs that consult the existing store
// contents when regenerating it, rather than encoding from the list
// alone. The KDE codec uses this to carry desktop-owned entries
// through a sync.
type rewriter interface {
	Rewrite(existing []byte, list model.List) ([]byte, error)
}

// writeTarget encodes the list and atomically replaces a single target
// store, creating missing parent directories first.
func (s *Synchronizer) writeTarget(c codec.Codec, path string, list model.List, dryRun bool) TargetResult {
	tr := TargetResult{Backend: c.Backend(), Path: path}

	var data []byte
	var err error
	if rw, ok := c.(rewriter); ok {
		// A missing or unreadable target is fine here: the codec
		// falls back to a fresh document.
		existing, _ := os.ReadFile(path) // #nosec G304
		data, err = rw.Rewrite(existing, list)
	} else {
		data, err = c.Encode(list)
	}
	if err != nil {
		tr.Status = StatusFailed
		tr.Err = fmt.Errorf("encode %s store: %w", c.Backend(), err)
		return tr
	}

	if dryRun {
		tr.Status = StatusSkipped
		tr.Message = "dry run"
		return tr
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tr.Status = StatusFailed
		tr.Err = fmt.Errorf("%w: %v", ErrFilesystem, err)
		logging.Error("failed to create target directory",
			logging.Backend(string(c.Backend())),
			logging.Path(path),
			logging.Err(err),
		)
		return tr
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		tr.Status = StatusFailed
		tr.Err = fmt.Errorf("%w: %v", ErrFilesystem, err)
		logging.Error("failed to write target store",
			logging.Backend(string(c.Backend())),
			logging.Path(path),
			logging.Err(err),
		)
		return tr
	}

	tr.Status = StatusWritten
	return tr
}
