package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sightline/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .csv, etc.), it strips that extension.
// This is used when generating multiple files (e.g., arena.svg, arena.csv).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams bundles the inputs to writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	stats     pipeline.Stats
}

// writeArtifacts writes each rendered format to disk and prints a summary.
// A single format with an explicit output goes to exactly that path ("-"
// means stdout); multiple formats derive sibling paths from the base.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		if err := writeArtifact(p.artifacts[p.formats[0]], p.output); err != nil {
			return err
		}
		if p.output != "-" {
			printSuccess("Generated %s", p.output)
			printStats(p.stats.TierCount, p.stats.RowCount, p.stats.Obstructed, p.cacheHit)
		}
		return nil
	}

	base := basePath(p.output, p.input)
	printSuccess("Generated %d file(s)", len(p.formats))
	for _, format := range p.formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeArtifact(p.artifacts[format], path); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(p.stats.TierCount, p.stats.RowCount, p.stats.Obstructed, p.cacheHit)
	return nil
}

func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
