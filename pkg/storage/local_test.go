package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Error("NewLocal() should fail for non-existent path")
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "gdrive-stash-file-*")
		if err != nil {
			t.Fatalf("failed to create temp file: %v", err)
		}
		tempFile.Close()
		defer os.Remove(tempFile.Name())

		_, err = NewLocal(tempFile.Name())
		if err == nil {
			t.Error("NewLocal() should fail for file path (not directory)")
		}
	})

	t.Run("RelativePath", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		// Change to temp dir parent and use relative path
		oldWd, _ := os.Getwd()
		os.Chdir(filepath.Dir(tempDir))
		defer os.Chdir(oldWd)

		local, err := NewLocal(filepath.Base(tempDir))
		if err != nil {
			t.Fatalf("NewLocal() should work with relative path: %v", err)
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want an absolute path", local.Root())
		}
	})
}

// TestLocalList tests the List method
func TestLocalList(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create test structure
	files := map[string][]byte{
		"file1.txt":        []byte("content1"),
		"file2.txt":        []byte("content2"),
		"subdir/file3.txt": []byte("content3"),
		"subdir/file4.txt": []byte("content4"),
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("RootLevel", func(t *testing.T) {
		entries, err := local.List(ctx, "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		// One level only: 2 files + 1 subdir, nothing from inside subdir
		if len(entries) != 3 {
			t.Fatalf("List() returned %d entries, want 3", len(entries))
		}

		fileCount := 0
		dirCount := 0
		for _, e := range entries {
			if e.IsDir {
				dirCount++
			} else {
				fileCount++
			}
		}
		if fileCount != 2 {
			t.Errorf("List() found %d files, want 2", fileCount)
		}
		if dirCount != 1 {
			t.Errorf("List() found %d dirs, want 1", dirCount)
		}
	})

	t.Run("Subdir", func(t *testing.T) {
		entries, err := local.List(ctx, "subdir")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("List() returned %d entries, want 2", len(entries))
		}
		for _, e := range entries {
			if filepath.Dir(e.RelativePath) != "subdir" {
				t.Errorf("RelativePath = %s, want it under subdir", e.RelativePath)
			}
		}
	})

	t.Run("NonExistentDir", func(t *testing.T) {
		if _, err := local.List(ctx, "missing"); err == nil {
			t.Error("List() should fail for a missing directory")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := local.List(ctx, ""); err == nil {
			t.Error("List() should return error on cancelled context")
		}
	})
}

// TestLocalStat tests the Stat method
func TestLocalStat(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	content := []byte("test content")
	if err := os.WriteFile(filepath.Join(tempDir, "stat.txt"), content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		info, err := local.Stat(ctx, "stat.txt")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.IsDir {
			t.Error("IsDir = true, want false")
		}
		if info.RelativePath != "stat.txt" {
			t.Errorf("RelativePath = %s, want stat.txt", info.RelativePath)
		}
		if info.ModTime.IsZero() {
			t.Error("ModTime should not be zero")
		}
	})

	t.Run("Directory", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(tempDir, "subdir"), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}

		info, err := local.Stat(ctx, "subdir")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsDir {
			t.Error("IsDir = false, want true")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		if _, err := local.Stat(ctx, "nonexistent.txt"); err == nil {
			t.Error("Stat() should fail for non-existent file")
		}
	})
}

// TestLocalExists tests the Exists method
func TestLocalExists(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "exists.txt"), []byte("content"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		exists, err := local.Exists(ctx, "exists.txt")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Error("Exists() = false, want true")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		exists, err := local.Exists(ctx, "nonexistent.txt")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if exists {
			t.Error("Exists() = true, want false")
		}
	})
}

// TestBackendInterface verifies Local implements Backend interface
func TestBackendInterface(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gdrive-stash-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	var _ Backend = local
}
