package jobs

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogExportJob_WritesCSV(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"title":"Mouse, Wireless","price":19.99}]`))
	}))
	defer backend.Close()
	t.Setenv("REMOTE_API_URL", backend.URL)

	dir := t.TempDir()
	CatalogExportJob(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("files = %d, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "products_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("file name = %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	if lines[0] != "ID,Name,Price,Category,Description" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 || !strings.Contains(lines[1], `"Mouse, Wireless"`) {
		t.Errorf("rows = %q", lines[1:])
	}
}

func TestCatalogExportJob_FetchFailureWritesNothing(t *testing.T) {
	t.Setenv("REMOTE_API_URL", "http://127.0.0.1:1")

	dir := t.TempDir()
	CatalogExportJob(dir)

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files = %d, want none on fetch failure", len(entries))
	}
}
