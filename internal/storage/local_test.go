package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("creates directory if not exists", func(t *testing.T) {
		dir := filepath.Join(os.TempDir(), "kling_test_"+randomSuffix())
		defer func() { _ = os.RemoveAll(dir) }()

		storage, err := NewLocalStorage(dir)
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		if storage.Dir() != dir {
			t.Errorf("Dir() = %v, want %v", storage.Dir(), dir)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("uses default directory when empty", func(t *testing.T) {
		storage, err := NewLocalStorage("")
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		expected := filepath.Join(os.TempDir(), "kling")
		if storage.Dir() != expected {
			t.Errorf("Dir() = %v, want %v", storage.Dir(), expected)
		}
	})
}

func TestLocalStorage_Save(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	t.Run("saves data under name", func(t *testing.T) {
		path, err := storage.Save(ctx, "task-1.mp4", bytes.NewReader([]byte("video data")))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if path != filepath.Join(storage.Dir(), "task-1.mp4") {
			t.Errorf("Save() path = %v, want file in %v", path, storage.Dir())
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(content) != "video data" {
			t.Errorf("file content = %q, want %q", string(content), "video data")
		}
	})

	t.Run("keeps only the base name", func(t *testing.T) {
		path, err := storage.Save(ctx, "../../escape.mp4", bytes.NewReader([]byte("x")))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if filepath.Dir(path) != storage.Dir() {
			t.Errorf("Save() wrote outside %v: %v", storage.Dir(), path)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		for _, name := range []string{"", ".", ".."} {
			_, err := storage.Save(ctx, name, bytes.NewReader(nil))
			if !errors.Is(err, ErrNameRequired) {
				t.Errorf("Save(%q) error = %v, want ErrNameRequired", name, err)
			}
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.Save(cancelled, "test.mp4", bytes.NewReader([]byte("data")))
		if err == nil {
			t.Error("Save() expected error for cancelled context")
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Save() error = %v, want context.Canceled", err)
		}
	})

	t.Run("leaves nothing behind on read failure", func(t *testing.T) {
		dir := setupTestStorage(t)

		_, err := dir.Save(ctx, "broken.mp4", &errorReader{})
		if err == nil {
			t.Fatal("Save() expected error for failing reader")
		}

		entries, err := os.ReadDir(dir.Dir())
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("directory has %d entries after failed save, want 0", len(entries))
		}
	})
}

func TestLocalStorage_Remove(t *testing.T) {
	storage := setupTestStorage(t)

	path, err := storage.Save(context.Background(), "gone.mp4", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := storage.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove()")
	}

	if err := storage.Remove(path); err != nil {
		t.Errorf("Remove() of missing file error = %v, want nil", err)
	}
}

func setupTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	dir := filepath.Join(os.TempDir(), "kling_test_"+randomSuffix())
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	storage, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return storage
}

// errorReader always fails on Read.
type errorReader struct{}

func (r *errorReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read error")
}

func randomSuffix() string {
	return time.Now().Format("20060102150405.000000000")
}
