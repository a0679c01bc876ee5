package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/c360studio/shaclex/config"
	"github.com/c360studio/shaclex/translate"
)

// App wires configuration and logging around the translation pipeline.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg, logger: slog.Default()}
}

func (a *App) options() translate.Options {
	return translate.Options{
		ShapeBase:     a.cfg.Translate.ShapeBase,
		ExtraPrefixes: a.cfg.Translate.Prefixes,
	}
}

// TranslateFile translates a single file and writes the result to
// output, or stdout when output is empty.
func (a *App) TranslateFile(path string, dir translate.Direction, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := translate.Run(data, dir, a.options())
	if err != nil {
		return fmt.Errorf("translate %s: %w", path, err)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("Lossy conversion", slog.String("file", path), slog.String("warning", w.String()))
	}

	if output == "" {
		_, err = os.Stdout.WriteString(result.Output)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	return os.WriteFile(output, []byte(result.Output), 0o644)
}

// RunBatch translates every file under root matching the configured
// glob patterns. Failures are collected per file; the run continues
// and reports how many files failed.
func (a *App) RunBatch(ctx context.Context, root string) error {
	runID := uuid.NewString()
	logger := a.logger.With(slog.String("run_id", runID))

	var matches []string
	for _, pattern := range a.cfg.Batch.Patterns {
		found, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return fmt.Errorf("glob %q: %w", pattern, err)
		}
		matches = append(matches, found...)
	}

	logger.Info("Batch translation starting",
		slog.String("root", root),
		slog.Int("files", len(matches)))

	failed := 0
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(root, rel)
		if err := a.translateBatchFile(path, root); err != nil {
			logger.Error("Translation failed", slog.String("file", path), slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Debug("Translated", slog.String("file", path))
	}

	logger.Info("Batch translation finished",
		slog.Int("files", len(matches)),
		slog.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to translate", failed, len(matches))
	}
	return nil
}

// Watch re-translates matching files as they change until the context
// is cancelled.
func (a *App) Watch(ctx context.Context, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	a.logger.Info("Watching for changes", slog.String("root", root))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !a.matchesBatch(event.Name, root) {
				continue
			}
			if err := a.translateBatchFile(event.Name, root); err != nil {
				a.logger.Error("Translation failed", slog.String("file", event.Name), slog.String("error", err.Error()))
			} else {
				a.logger.Info("Translated", slog.String("file", event.Name))
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// matchesBatch reports whether a path matches one of the configured
// batch glob patterns, relative to the batch root.
func (a *App) matchesBatch(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range a.cfg.Batch.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// translateBatchFile translates one batch input to its counterpart
// extension, in the output directory when configured and alongside the
// input otherwise.
func (a *App) translateBatchFile(path, root string) error {
	dir, err := translate.DetectDirection(path)
	if err != nil {
		return err
	}

	outExt := ".shex"
	if dir == translate.ShExToSHACL {
		outExt = ".ttl"
	}
	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + outExt
	if a.cfg.Batch.OutputDir != "" {
		rel, err := filepath.Rel(root, outPath)
		if err != nil {
			return err
		}
		outPath = filepath.Join(a.cfg.Batch.OutputDir, rel)
	}

	return a.TranslateFile(path, dir, outPath)
}
