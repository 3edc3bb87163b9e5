package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nested", "test.toml")

	type TestStruct struct {
		Config map[string][]string `toml:"config"`
	}

	originalData := TestStruct{
		Config: map[string][]string{"a.env": {"age1abc", "age1def"}},
	}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	got := loadedData.Config["a.env"]
	if len(got) != 2 || got[0] != "age1abc" || got[1] != "age1def" {
		t.Errorf("Expected recipients to survive a round trip, got %v", got)
	}
}

func TestSaveTOMLLeavesNoTempFiles(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	for i := 0; i < 3; i++ {
		if err := SaveTOML(testFile, map[string]int{"n": i}); err != nil {
			t.Fatalf("SaveTOML failed: %v", err)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "test.toml" {
		t.Errorf("Expected only test.toml, got %v", entries)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nonexistent.toml")

	var data struct{ Name string }
	if err := LoadTOML(testFile, &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	found, err := LoadTOMLIfExists(testFile, &data)
	if err != nil {
		t.Fatalf("LoadTOMLIfExists failed: %v", err)
	}
	if found {
		t.Error("Expected found to be false for a missing file")
	}
}

func TestLoadTOMLInvalid(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "invalid.toml")
	if err := os.WriteFile(testFile, []byte("this is = = not toml"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var data struct{ Name string }
	if _, err := LoadTOMLIfExists(testFile, &data); err == nil {
		t.Fatal("Expected error for invalid TOML, got nil")
	}
}
