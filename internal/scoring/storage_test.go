package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONFileStorage_SaveAndLoad(t *testing.T) {
	// Create a temporary directory for testing
	tmpDir, err := os.MkdirTemp("", "tenbox-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testPath := filepath.Join(tmpDir, "nested", "rankings.json")
	storage := NewJSONFileStorage(testPath)

	// 1. Test Load on non-existent file (should return empty)
	entries, err := storage.LoadAll()
	if err != nil {
		t.Errorf("LoadAll on non-existent file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}

	// 2. Test Save
	testEntries := []Entry{
		{Name: "Ann", Score: 200, Time: "2024-01-02 10:00:00"},
		{Name: "Bob", Score: 100, Time: "2024-01-01 09:00:00"},
	}
	if err := storage.SaveAll(testEntries); err != nil {
		t.Fatalf("SaveAll returned error: %v", err)
	}

	// The on-disk format is a single JSON array
	raw, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		t.Errorf("Expected a JSON array, got %s", raw)
	}
	if !strings.Contains(string(raw), `"time": "2024-01-02 10:00:00"`) {
		t.Errorf("Expected time field in output, got %s", raw)
	}

	// 3. Test Load again (should return saved entries in order)
	loaded, err := storage.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Name != "Ann" || loaded[1].Score != 100 {
		t.Errorf("Loaded content mismatch. Got: %+v", loaded)
	}
}

func TestJSONFileStorage_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{ not valid json }"},
		{"object instead of array", `{"name":"a","score":1}`},
		{"wrong field type", `[{"name":"a","score":"high"}]`},
		{"negative score", `[{"name":"a","score":-5,"time":""}]`},
	}

	for _, tt := range tests {
		testPath := filepath.Join(t.TempDir(), "rankings.json")
		if err := os.WriteFile(testPath, []byte(tt.content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}

		if _, err := NewJSONFileStorage(testPath).LoadAll(); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestJSONFileStorage_EmptyFile(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(testPath, []byte("  \n"), 0644); err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}

	entries, err := NewJSONFileStorage(testPath).LoadAll()
	if err != nil {
		t.Errorf("LoadAll on empty file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries from empty file, got %d", len(entries))
	}
}

func TestJSONFileStorage_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	// a regular file where the parent directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write blocker: %v", err)
	}

	err := NewJSONFileStorage(filepath.Join(blocker, "rankings.json")).SaveAll([]Entry{{Name: "a"}})
	if err == nil {
		t.Error("Expected error writing below a regular file")
	}
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	storage, err := OpenSQLiteStorage(filepath.Join(t.TempDir(), "db", "rankings.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStorage failed: %v", err)
	}
	defer storage.Close()

	entries, err := storage.LoadAll()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Expected empty table, got %v, %v", entries, err)
	}

	first := []Entry{{Name: "A", Score: 30, Time: "t1"}, {Name: "B", Score: 20, Time: "t2"}}
	if err := storage.SaveAll(first); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	second := []Entry{{Name: "C", Score: 50, Time: "t3"}}
	if err := storage.SaveAll(second); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	loaded, err := storage.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != second[0] {
		t.Errorf("SaveAll should overwrite, got %+v", loaded)
	}
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	s, closeFn, err := OpenStorage("json", filepath.Join(dir, "r.json"))
	if err != nil {
		t.Fatalf("OpenStorage(json) failed: %v", err)
	}
	if _, ok := s.(*JSONFileStorage); !ok {
		t.Errorf("Expected *JSONFileStorage, got %T", s)
	}
	closeFn()

	s, closeFn, err = OpenStorage("sqlite", filepath.Join(dir, "r.db"))
	if err != nil {
		t.Fatalf("OpenStorage(sqlite) failed: %v", err)
	}
	if _, ok := s.(*SQLiteStorage); !ok {
		t.Errorf("Expected *SQLiteStorage, got %T", s)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	if _, _, err := OpenStorage("redis", "x"); err == nil {
		t.Error("Expected error for unknown storage")
	}
}

func TestJSONFileStorage_LoadCleansRecords(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "rankings.json")
	content := `[{"foo":1},{"name":"` + strings.Repeat("x", 30) + `","score":5,"time":"t"},{"name":"  ","score":3,"time":"u"}]`
	if err := os.WriteFile(testPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	entries, err := NewJSONFileStorage(testPath).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected the record without name and score to be skipped, got %+v", entries)
	}
	if entries[0].Name != strings.Repeat("x", MaxNameLen) || entries[0].Score != 5 || entries[0].Time != "t" {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if entries[1].Name != DefaultName {
		t.Errorf("Blank name should load as %q, got %q", DefaultName, entries[1].Name)
	}
}
