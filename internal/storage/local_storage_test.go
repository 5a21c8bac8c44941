package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewLocalStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("SaveFile keeps extension", func(t *testing.T) {
		content := []byte("poster bytes")
		filename, err := storage.SaveFile(bytes.NewReader(content), FileInfo{
			Filename:    "Poster.JPG",
			ContentType: "image/jpeg",
			Size:        int64(len(content)),
		})
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if filepath.Ext(filename) != ".jpg" {
			t.Errorf("Expected .jpg extension, got %s", filepath.Ext(filename))
		}

		saved, err := os.ReadFile(filepath.Join(tmpDir, filename))
		if err != nil {
			t.Fatalf("File was not saved: %v", err)
		}
		if !bytes.Equal(saved, content) {
			t.Error("Saved content mismatch")
		}
	})

	t.Run("SaveFile derives extension", func(t *testing.T) {
		filename, err := storage.SaveFile(strings.NewReader("x"), FileInfo{Filename: "clip", ContentType: "video/mp4"})
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}
		if filepath.Ext(filename) == "" {
			t.Errorf("Expected an extension for %s", filename)
		}

		filename, err = storage.SaveFile(strings.NewReader("x"), FileInfo{Filename: "blob"})
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}
		if filepath.Ext(filename) != ".bin" {
			t.Errorf("Expected .bin fallback, got %s", filename)
		}
	})

	t.Run("OpenFile", func(t *testing.T) {
		content := []byte("artwork")
		if err := os.WriteFile(filepath.Join(tmpDir, "hero.jpg"), content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		file, err := storage.OpenFile("hero.jpg")
		if err != nil {
			t.Fatalf("Failed to open file: %v", err)
		}
		defer file.Close()

		got, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("File content mismatch")
		}
	})

	t.Run("DeleteFile", func(t *testing.T) {
		fullPath := filepath.Join(tmpDir, "delete-test.mp4")
		if err := os.WriteFile(fullPath, []byte("test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		if err := storage.DeleteFile("delete-test.mp4"); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}

		if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
			t.Errorf("File was not deleted")
		}
	})

	t.Run("PathTraversalPrevention", func(t *testing.T) {
		if _, err := storage.OpenFile("../../../etc/passwd"); err == nil {
			t.Errorf("Path traversal was not prevented")
		}
		if err := storage.DeleteFile("../../../etc/passwd"); err == nil {
			t.Errorf("Path traversal was not prevented in delete")
		}
		if _, err := storage.OpenFile("/etc/passwd"); err == nil {
			t.Errorf("Absolute path was not rejected")
		}
	})
}
