package theme

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	t.Run("Notifies On Change", func(t *testing.T) {
		dir := t.TempDir()

		notified := make(chan struct{}, 8)
		w := newWatcherForDirs([]string{dir}, func() {
			notified <- struct{}{}
		}, nil)

		if err := w.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer w.Close()

		if err := os.WriteFile(filepath.Join(dir, "gtk.css"), []byte("@define-color a #fff;"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		select {
		case <-notified:
		case <-time.After(3 * time.Second):
			t.Fatal("expected a change notification")
		}
	})

	t.Run("Coalesces Bursts", func(t *testing.T) {
		dir := t.TempDir()

		var count atomic.Int32
		w := newWatcherForDirs([]string{dir}, func() {
			count.Add(1)
		}, nil)

		if err := w.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer w.Close()

		// a theme switch rewrites several files back to back
		for i, name := range []string{"gtk.css", "colors.css", "settings.ini"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("failed to write file %d: %v", i, err)
			}
			time.Sleep(10 * time.Millisecond)
		}

		time.Sleep(DebounceInterval + 500*time.Millisecond)

		if got := count.Load(); got != 1 {
			t.Errorf("expected 1 coalesced notification, got %d", got)
		}
	})

	t.Run("Start Twice Is A No-Op", func(t *testing.T) {
		dir := t.TempDir()
		w := newWatcherForDirs([]string{dir}, func() {}, nil)

		if err := w.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer w.Close()

		if err := w.Start(); err != nil {
			t.Errorf("second Start should be a no-op, got %v", err)
		}
	})

	t.Run("Close Twice Is A No-Op", func(t *testing.T) {
		dir := t.TempDir()
		w := newWatcherForDirs([]string{dir}, func() {}, nil)

		if err := w.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("second Close should be a no-op, got %v", err)
		}
	})

	t.Run("No Watchable Directories", func(t *testing.T) {
		w := newWatcherForDirs([]string{filepath.Join(t.TempDir(), "missing")}, func() {}, nil)
		if err := w.Start(); err == nil {
			w.Close()
			t.Error("expected an error with no watchable directories")
		}
	})
}
