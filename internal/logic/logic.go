// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/internal/encryption"
	"github.com/idelchi/goctr/internal/filter"
)

// Run is the main logic of the application.
func Run(cfg *config.Config) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	skipped := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, scanned, skipped, start)

		return nil
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, skipped, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles expands directories in cfg.Files into the files selected below
// them. Without include patterns, decrypt and verify select files carrying the
// encrypted suffix and encrypt skips them. Returns the number of files seen
// before selection.
func resolveFiles(cfg *config.Config) (int, error) {
	includes := slices.Clone(cfg.Include)
	excludes := slices.Clone(cfg.Exclude)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	if len(includes) == 0 {
		encrypted := "*" + cfg.Suffixes.Encrypt

		if cfg.Decrypt || cfg.Verify {
			includes = append(includes, encrypted)
		} else {
			excludes = append(excludes, encrypted)
		}
	}

	flt, err := filter.New(includes, excludes)
	if err != nil {
		return 0, err
	}

	files, scanned, err := flt.Resolve(cfg.Files)
	if err != nil {
		return scanned, err
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(cfg *config.Config, scanned, skipped int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			if cfg.Verify {
				fmt.Printf("Would verify %q\n", file) //nolint:forbidigo
			} else {
				fmt.Printf("Would process %q -> %q\n", file, encryption.OutputPath(cfg, file)) //nolint:forbidigo
			}
		}

		if info, err := os.Stat(file); err == nil {
			totalSize += info.Size()
		}
	}

	if cfg.Stats {
		printStats(scanned, skipped, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(scanned, skipped, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", skipped)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
