package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/craftlink/craftlink-backend/internal/catalog"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.json")
	content := `{"services": [
		{"id": "plumbing", "name": "Plumbing", "base_rate": 45},
		{"id": "cleaning", "name": "Cleaning", "base_rate": 25}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write services file: %v", err)
	}

	c, err := catalog.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if len(c.All()) != 2 {
		t.Fatalf("expected 2 services, got %d", len(c.All()))
	}
	if !c.Exists("plumbing") {
		t.Error("expected plumbing to exist")
	}
	if c.Exists("welding") {
		t.Error("expected welding not to exist")
	}
	if svc := c.Get("cleaning"); svc == nil || svc.BaseRate != 25 {
		t.Errorf("unexpected cleaning service: %+v", svc)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := catalog.LoadFromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write services file: %v", err)
	}
	if _, err := catalog.LoadFromFile(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
