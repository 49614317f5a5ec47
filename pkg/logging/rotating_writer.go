package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingWriter is a file writer that rotates the log file once it
// exceeds maxSize and periodically verifies that the open descriptor
// still points at the configured path (handles external moves/deletes
// by log-shipping tooling).
type RotatingWriter struct {
	mu             sync.Mutex
	f              *os.File
	path           string
	maxSize        int64
	approxSize     int64
	verifyInterval time.Duration
	stopCh         chan struct{}
	wg             sync.WaitGroup
}

// NewRotatingWriter opens path for appending, rotating immediately if
// the existing file already exceeds maxSize, and starts the background
// identity verifier.
func NewRotatingWriter(path string, maxSize int64, verifyInterval time.Duration) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:           path,
		maxSize:        maxSize,
		verifyInterval: verifyInterval,
		stopCh:         make(chan struct{}),
	}

	if err := w.openLocked(); err != nil {
		return nil, err
	}
	if w.approxSize >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.verifyLoop()

	return w, nil
}

// Write implements io.Writer
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.approxSize+int64(len(p)) >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}

	n, err := w.f.Write(p)
	w.approxSize += int64(n)
	return n, err
}

// Close stops the background verifier and closes the file
func (w *RotatingWriter) Close() error {
	close(w.stopCh)
	w.wg.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}

func (w *RotatingWriter) verifyLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.verifyInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.mu.Lock()
			w.verifyLocked()
			w.mu.Unlock()
		case <-w.stopCh:
			return
		}
	}
}

// openLocked opens the file for appending and records its current size.
func (w *RotatingWriter) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	w.f = f
	w.approxSize = fi.Size()
	return nil
}

// rotateLocked archives the current file as <name>.YYYYMMDD-HHMMSS in an
// old/ directory next to it and starts a fresh one.
func (w *RotatingWriter) rotateLocked() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}

	dir := filepath.Dir(w.path)
	oldDir := filepath.Join(dir, "old")
	if err := os.MkdirAll(oldDir, 0755); err != nil {
		return fmt.Errorf("creating old/ directory: %w", err)
	}

	archive := filepath.Join(oldDir, fmt.Sprintf("%s.%s",
		filepath.Base(w.path), time.Now().Format("20060102-150405")))

	// Best effort, the file might not exist anymore.
	_ = os.Rename(w.path, archive)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating new log file: %w", err)
	}

	w.f = f
	w.approxSize = 0
	return nil
}

// verifyLocked reopens the file if the open descriptor no longer points
// at the configured path and corrects size drift from external writes.
func (w *RotatingWriter) verifyLocked() {
	if w.f == nil {
		_ = w.openLocked()
		return
	}

	fiPath, err := os.Lstat(w.path)
	if err != nil {
		w.reopenLocked()
		return
	}

	fiOpen, err := w.f.Stat()
	if err != nil || !os.SameFile(fiOpen, fiPath) {
		w.reopenLocked()
		return
	}

	if drift := fiOpen.Size() - w.approxSize; drift > 8*1024 || drift < -8*1024 {
		w.approxSize = fiOpen.Size()
	}
}

func (w *RotatingWriter) reopenLocked() {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	_ = w.openLocked()
}
