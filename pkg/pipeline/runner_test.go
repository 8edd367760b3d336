package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	stderrors "errors"

	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/errors"
)

const testProfile = `
units = "m"

[focus]
h = 0.0
v = 0.0

[[tier]]
start_h = 5.0
start_v = 1.0
c_value = 0.1
rows = 8

[[tier]]
anchor = "prev-tier"
start_h = 1.0
start_v = 0.5
c_value = 0.12
rows = 6
fascia_height = 0.9
`

func writeProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.toml")
	if err := os.WriteFile(path, []byte(testProfile), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		ProfilePath: writeProfile(t),
		Formats:     []string{FormatSVG, FormatJSON, FormatCSV},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.TierCount != 2 {
		t.Errorf("TierCount = %d, want 2", result.Stats.TierCount)
	}
	if result.Stats.RowCount != 14 {
		t.Errorf("RowCount = %d, want 14", result.Stats.RowCount)
	}
	if result.ProfileHash == "" {
		t.Error("ProfileHash not set")
	}
	for _, format := range []string{FormatSVG, FormatJSON, FormatCSV} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestRunnerExecuteInlineProfile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Profile: []byte(testProfile),
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("missing json artifact")
	}
}

func TestRunnerExecuteCachesArtifacts(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		Profile: []byte(testProfile),
		Formats: []string{FormatSVG},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute failed: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestRunnerExecuteMissingProfile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		ProfilePath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
	var serr *errors.Error
	if !stderrors.As(err, &serr) || serr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunnerExecuteInvalidProfile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Profile: []byte("rows = ["),
	})
	if !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("error = %v, want INVALID_PROFILE", err)
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Profile: []byte(testProfile),
		Formats: []string{"gif"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}

	_, err = runner.Execute(context.Background(), Options{
		Profile: []byte(testProfile),
		Style:   "sketch",
	})
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("error = %v, want INVALID_STYLE", err)
	}
}
