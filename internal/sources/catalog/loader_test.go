package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "hotels.yaml")

	yamlContent := `---
- Singapore:
    - SINGI: Hilton Singapore Orchard
    - SINDT: DoubleTree by Hilton Singapore
- Japan:
    - TYOCI: Conrad Tokyo
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	config, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(config) != 2 {
		t.Fatalf("Load() returned %d destinations, want 2", len(config))
	}
	if got := config[0]["Singapore"]; len(got) != 2 || got[0]["SINGI"] != "Hilton Singapore Orchard" {
		t.Errorf("Load() Singapore = %v", got)
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := NewLoader(filepath.Join(tmpDir, "missing.yaml")).Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- Singapore: [SINGI: {"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	if _, err := NewLoader(bad).Load(); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}
