package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/internal/fileutil"
	"github.com/idelchi/goctr/pkg/codec"
	"github.com/idelchi/goctr/pkg/kdf"
)

// Processor handles the encryption, decryption and verification of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// password protects every file of the run
	password []byte

	// strength is used for newly encrypted files
	strength kdf.Strength

	// options configure every codec the processor creates
	options []codec.Option

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	password, err := cfg.Secret()
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	strength, err := kdf.ParseStrength(cfg.Strength)
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:      cfg,
		password: password,
		strength: strength,
		options: []codec.Option{
			codec.WithParams(kdf.Params{N: cfg.Scrypt.N, R: cfg.Scrypt.R, P: cfg.Scrypt.P}),
			codec.WithWorkers(cfg.Workers),
		},
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// codecFor returns a codec for the given strength.
func (p *Processor) codecFor(strength kdf.Strength) *codec.Codec {
	return codec.New(slices.Concat(p.options, []codec.Option{codec.WithStrength(strength)})...)
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts, decrypts or verifies files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				if p.cfg.Verify {
					fmt.Printf("Verified %q\n", result.Input) //nolint:forbidigo
				} else {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && !p.cfg.Verify {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			if p.cfg.Verify {
				if err := p.verifyFile(file); err != nil {
					p.results <- Result{Input: file, Error: err}

					return err
				}

				p.results <- Result{Input: file}

				return nil
			}

			outPath := OutputPath(p.cfg, file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt seals data into an envelope header followed by a frame.
func (p *Processor) encrypt(data []byte, isExec bool) ([]byte, error) {
	header := newEnvelope(p.strength, isExec, len(data)).marshal()

	frame, err := p.codecFor(p.strength).Encrypt(p.password, data)
	if err != nil {
		return nil, err
	}

	return append(header, frame...), nil
}

// decrypt opens an envelope and returns the plaintext and whether the original
// file was executable. Padding is cut to the length recorded in the envelope
// unless KeepPadding is set.
func (p *Processor) decrypt(data []byte) ([]byte, bool, error) {
	env, frame, err := parseEnvelope(data)
	if err != nil {
		return nil, false, err
	}

	logrus.WithFields(logrus.Fields{
		"strength":   env.strength.String(),
		"executable": env.executable,
		"tail":       env.tail,
		"frame":      len(frame),
	}).Debug("opening envelope")

	plaintext, err := p.codecFor(env.strength).Decrypt(p.password, frame)
	if err != nil {
		return nil, false, err
	}

	if !p.cfg.KeepPadding {
		plaintext, err = env.trim(plaintext)
		if err != nil {
			return nil, false, err
		}
	}

	return plaintext, env.executable, nil
}

// verifyFile authenticates an encrypted file without writing anything.
func (p *Processor) verifyFile(filename string) error {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	env, frame, err := parseEnvelope(data)
	if err != nil {
		return err
	}

	if err := p.codecFor(env.strength).Verify(p.password, frame); err != nil {
		return fmt.Errorf("verifying file: %w", err)
	}

	return nil
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, fmt.Errorf("output path %q would overwrite the input", outPath)
	}

	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	input, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file":    filename,
		"decrypt": p.cfg.Decrypt,
		"size":    len(input),
	}).Debug("processing file")

	var (
		output []byte
		exec   bool
	)

	if p.cfg.Decrypt {
		output, exec, err = p.decrypt(input)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		exec = tc.IsExec

		output, err = p.encrypt(input, exec)
		if err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	if err := tc.Commit(outPath, output, exec); err != nil {
		return 0, err
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// OutputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func OutputPath(cfg *config.Config, filename string) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
