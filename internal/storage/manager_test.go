// manager_test.go - Tests for storage layer
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewLocalStore(t *testing.T) {
	t.Run("creates upload directory", func(t *testing.T) {
		uploadDir := filepath.Join(t.TempDir(), "uploads")

		if _, err := NewLocalStore(uploadDir); err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			t.Error("Expected upload directory to be created")
		}
	})
}

func TestLocalStore_Save(t *testing.T) {
	t.Run("saves file from reader", func(t *testing.T) {
		store := createTestStore(t)

		content := "name,age\nAda,36\n"
		info, err := store.Save("patients.csv", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if info.ID == "" {
			t.Error("Expected ID to be set")
		}
		if !strings.HasSuffix(info.ID, ".csv") {
			t.Errorf("Expected ID to keep extension, got %v", info.ID)
		}
		if info.Name != "patients.csv" {
			t.Errorf("Expected name 'patients.csv', got %v", info.Name)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), info.Size)
		}
		if info.Status != StatusUploaded {
			t.Errorf("Expected status %q, got %v", StatusUploaded, info.Status)
		}

		data, err := os.ReadFile(filepath.Join(store.uploadDir, info.ID))
		if err != nil {
			t.Fatalf("Failed to read saved file: %v", err)
		}
		if string(data) != content {
			t.Errorf("Expected content %q, got %q", content, string(data))
		}
	})

	t.Run("saves empty file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("empty.xlsx", strings.NewReader(""))
		if err != nil {
			t.Fatalf("Failed to save empty file: %v", err)
		}
		if info.Size != 0 {
			t.Errorf("Expected size 0, got %d", info.Size)
		}
	})
}

func TestLocalStore_Get(t *testing.T) {
	store := createTestStore(t)

	info, err := store.Save("a.xlsx", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	retrieved, err := store.Get(info.ID)
	if err != nil {
		t.Fatalf("Failed to get file: %v", err)
	}
	if retrieved.Name != "a.xlsx" {
		t.Errorf("Expected name a.xlsx, got %s", retrieved.Name)
	}

	if _, err := store.Get("non-existent-id"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLocalStore_UpdateStatus(t *testing.T) {
	store := createTestStore(t)

	info, _ := store.Save("a.xlsx", strings.NewReader("content"))
	if err := store.UpdateStatus(info.ID, StatusGenerated); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	retrieved, _ := store.Get(info.ID)
	if retrieved.Status != StatusGenerated {
		t.Errorf("Expected status %q, got %q", StatusGenerated, retrieved.Status)
	}

	if err := store.UpdateStatus("missing", StatusError); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLocalStore_GetFilePath(t *testing.T) {
	store := createTestStore(t)

	info, _ := store.Save("a.csv", strings.NewReader("content"))
	path, err := store.GetFilePath(info.ID)
	if err != nil {
		t.Fatalf("Failed to get file path: %v", err)
	}
	if expected := filepath.Join(store.uploadDir, info.ID); path != expected {
		t.Errorf("Expected path %s, got %s", expected, path)
	}

	if _, err := store.GetFilePath("non-existent-id"); err == nil {
		t.Error("Expected error when getting path for non-existent file")
	}
}

func TestLocalStore_Delete(t *testing.T) {
	store := createTestStore(t)

	info, _ := store.Save("a.csv", strings.NewReader("content"))
	filePath := filepath.Join(store.uploadDir, info.ID)

	if err := store.Delete(info.ID); err != nil {
		t.Fatalf("Failed to delete file: %v", err)
	}
	if _, err := store.Get(info.ID); err == nil {
		t.Error("Expected error when getting deleted file")
	}
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Error("Physical file should be deleted")
	}

	if err := store.Delete("non-existent-id"); err == nil {
		t.Error("Expected error when deleting non-existent file")
	}
}
