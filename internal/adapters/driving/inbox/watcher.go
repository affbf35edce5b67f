// Package inbox captures scans dropped into a directory by an external OCR step.
//
// A capture is a pair of files sharing a base name: <name>.txt holding the
// recognised text and <name>.jpg, <name>.jpeg or <name>.png holding the
// photo. The pair is captured once both files exist and neither is empty.
//
// The text file is read as soon as it appears, so producers should write the
// image first, then write the text under a hidden name such as .<name>.txt
// and rename it into place. Hidden files are ignored and the rename arrives
// as a create of the final name, so a half-written text is never captured.
package inbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// TextExtension marks the recognised-text half of a pair.
const TextExtension = ".txt"

// ImageExtensions are tried in order for the image half of a pair.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// Watcher turns file pairs in a directory into saved scans.
// Each pair is captured at most once per Watcher.
type Watcher struct {
	dir   string
	scans driving.ScanService
	seen  map[string]struct{}

	// OnCapture, if set, is called after every saved scan.
	OnCapture func(name string, record *domain.ScanRecord)
}

// New creates a watcher for dir.
func New(dir string, scans driving.ScanService) *Watcher {
	return &Watcher{
		dir:   dir,
		scans: scans,
		seen:  make(map[string]struct{}),
	}
}

// Sweep captures every complete pair already present in the directory.
func (w *Watcher) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("reading inbox: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), TextExtension) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	captured := 0
	for _, name := range names {
		ok, err := w.process(ctx, filepath.Join(w.dir, name))
		if err != nil {
			logger.Warn("inbox %s: %v", name, err)
			continue
		}
		if ok {
			captured++
		}
	}
	return captured, nil
}

// Run sweeps the directory, then captures new pairs as they appear until ctx
// is cancelled. Capture failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	if _, err := w.Sweep(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if _, err := w.handleEvent(ctx, event); err != nil {
				logger.Warn("inbox %s: %v", filepath.Base(event.Name), err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inbox watcher: %v", err)
		}
	}
}

// handleEvent captures the pair an event belongs to, if it is now complete.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) (bool, error) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false, nil
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false, nil
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	switch {
	case ext == TextExtension:
		return w.process(ctx, event.Name)
	case isImageExtension(ext):
		// The image landed after its text file.
		textPath := strings.TrimSuffix(event.Name, filepath.Ext(event.Name)) + TextExtension
		if _, err := os.Stat(textPath); err != nil {
			return false, nil
		}
		return w.process(ctx, textPath)
	default:
		return false, nil
	}
}

// process captures the pair rooted at textPath. It reports false when the pair
// is incomplete or was already captured.
func (w *Watcher) process(ctx context.Context, textPath string) (bool, error) {
	base := strings.TrimSuffix(textPath, filepath.Ext(textPath))
	if _, done := w.seen[base]; done {
		return false, nil
	}

	imagePath, ok := findImage(base)
	if !ok {
		return false, nil
	}

	text, err := os.ReadFile(textPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading text: %w", err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		// Created but not yet filled; the write that follows retries.
		return false, nil
	}
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return false, fmt.Errorf("reading image: %w", err)
	}
	if len(image) == 0 {
		return false, nil
	}

	record, err := w.scans.Capture(ctx, string(text), image)
	if err != nil {
		return false, err
	}

	w.seen[base] = struct{}{}
	name := filepath.Base(base)
	logger.Info("inbox: captured %s as scan %s", name, record.ID)
	if w.OnCapture != nil {
		w.OnCapture(name, record)
	}
	return true, nil
}

func findImage(base string) (string, bool) {
	for _, ext := range ImageExtensions {
		for _, candidate := range []string{base + ext, base + strings.ToUpper(ext)} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

func isImageExtension(ext string) bool {
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
