// Package staging manages the server-local directory where uploaded files are
// temporarily persisted during request handling.
package staging

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recaplabs/recap/pkg/lifecycle"
)

// System manages staged upload files and lifecycle coordination.
type System interface {
	// Start registers a startup hook that creates the staging directory and
	// sweeps stale files left over from previous runs.
	Start(lc *lifecycle.Coordinator) error
	// Save persists the reader's contents under the given name and returns the
	// staged file path. A second save with the same name overwrites the first.
	Save(name string, reader io.Reader) (string, error)
	// Path returns the staged file path for the given name.
	// Returns ErrNotFound if no such file is staged.
	Path(name string) (string, error)
	// Remove deletes the staged file, retrying with linearly increasing backoff.
	// A missing file is not an error. The final failure is logged and returned;
	// callers treat removal as best-effort.
	Remove(ctx context.Context, name string) error
	// Sweep removes staged files older than the configured max age.
	Sweep(ctx context.Context) error
}

type local struct {
	dir     string
	maxAge  time.Duration
	retries int
	backoff time.Duration
	workers int
	logger  *slog.Logger
}

// New creates a staging system from the given configuration. The staging
// directory is not created until Start or the first Save.
func New(cfg *Config, logger *slog.Logger) System {
	return &local{
		dir:     cfg.Dir,
		maxAge:  cfg.MaxAgeDuration(),
		retries: cfg.CleanupRetries,
		backoff: cfg.CleanupBackoffDuration(),
		workers: cfg.SweepWorkers,
		logger:  logger.With("system", "staging"),
	}
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting staging system", "dir", l.dir)

	lc.OnStartup(func() {
		if err := os.MkdirAll(l.dir, 0o750); err != nil {
			l.logger.Error("staging directory initialization failed", "error", err)
			return
		}

		if err := l.Sweep(lc.Context()); err != nil {
			l.logger.Warn("stale staging sweep incomplete", "error", err)
		}

		l.logger.Info("staging directory ready", "dir", l.dir)
	})

	return nil
}

func (l *local) Save(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(l.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}

	return path, nil
}

func (l *local) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(l.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat %s: %w", name, err)
	}

	return path, nil
}

func (l *local) Remove(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	path := filepath.Join(l.dir, name)

	var last error
	for attempt := 1; attempt <= l.retries; attempt++ {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		last = err

		l.logger.Warn(
			"staged file removal failed",
			"file", name,
			"attempt", attempt,
			"error", err,
		)

		if attempt < l.retries {
			select {
			case <-time.After(l.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	l.logger.Error("staged file not removed", "file", name, "attempts", l.retries, "error", last)
	return fmt.Errorf("remove %s after %d attempts: %w", name, l.retries, last)
}

func (l *local) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read staging dir: %w", err)
	}

	cutoff := time.Now().Add(-l.maxAge)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	swept := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().After(cutoff) {
			continue
		}

		swept++
		g.Go(func() error {
			return l.Remove(ctx, info.Name())
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("sweep staging dir: %w", err)
	}

	if swept > 0 {
		l.logger.Info("stale staged files swept", "count", swept)
	}
	return nil
}

// validateName rejects names that would escape the staging directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	if !fs.ValidPath(name) {
		return ErrInvalidName
	}
	return nil
}
