package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sightline/pkg/pipeline"
)

func TestWriteArtifactsSingleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "arena.toml",
		output:    path,
		stats:     pipeline.Stats{TierCount: 1, RowCount: 3},
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output = %q", data)
	}
}

func TestWriteArtifactsMultipleDerivePaths(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "arena.toml")
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"json": []byte(`{}`),
			"csv":  []byte("tier,row\n"),
		},
		formats: []string{"json", "csv"},
		input:   input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, ext := range []string{"json", "csv"} {
		path := filepath.Join(dir, "arena."+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.toml")
	if err := runInit(path, false); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("profile not written: %v", err)
	}

	// Refuses to overwrite without force.
	if err := runInit(path, false); err == nil {
		t.Error("expected overwrite refusal")
	}
	if err := runInit(path, true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}
