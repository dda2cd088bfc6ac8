// Package config holds the command-line configuration for goctr.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Suffixes are the file name suffixes used for output files.
type Suffixes struct {
	// Encrypt is appended to encrypted files and stripped when decrypting.
	Encrypt string `mapstructure:"encrypt-ext" validate:"required"`
	// Decrypt is appended to decrypted files after stripping Encrypt.
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Scrypt holds the key-derivation cost parameters.
type Scrypt struct {
	N int `mapstructure:"scrypt-n" validate:"min=2"`
	R int `mapstructure:"scrypt-r" validate:"min=1"`
	P int `mapstructure:"scrypt-p" validate:"min=1"`
}

// Config is populated from flags and GOCTR_* environment variables.
type Config struct {
	// Password protects every file. Mutually exclusive with PasswordFile.
	Password string `validate:"required_without=PasswordFile,exclusive=PasswordFile"`
	// PasswordFile is a file holding the password.
	PasswordFile string `mapstructure:"password-file" validate:"required_without=Password"`

	// Strength is the AES key length in bits.
	Strength int `validate:"oneof=128 192 256"`
	// Parallel bounds the number of files processed at once.
	Parallel int `validate:"min=1"`
	// Workers bounds the number of goroutines encrypting blocks of one file.
	Workers int `validate:"min=1"`

	// Include and Exclude select files found below directory arguments.
	Include []string `validate:"dive,required"`
	Exclude []string `validate:"dive,required"`
	// IncludeFrom and ExcludeFrom name JSONC files holding more patterns.
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	Scrypt   Scrypt   `mapstructure:",squash"`
	Suffixes Suffixes `mapstructure:",squash"`

	Quiet              bool
	Verbose            bool
	Delete             bool
	Stats              bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
	// KeepPadding leaves the final-block padding in decrypted output.
	KeepPadding bool `mapstructure:"keep-padding"`
	// Dry lists the files that would be processed without touching them.
	Dry bool

	// Set by the subcommand.
	Decrypt bool `mapstructure:"-"`
	Verify  bool `mapstructure:"-"`

	// Positional arguments
	Files []string `mapstructure:"-" validate:"min=1,dive,required"`
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Scrypt.N&(c.Scrypt.N-1) != 0 {
		return fmt.Errorf("validating configuration: scrypt-n must be a power of two, got %d", c.Scrypt.N)
	}

	return nil
}

// Secret returns the password, reading it from PasswordFile when set.
// A single trailing newline in the file is ignored.
func (c *Config) Secret() ([]byte, error) {
	if c.PasswordFile == "" {
		if c.Password == "" {
			return nil, errors.New("no password configured")
		}

		return []byte(c.Password), nil
	}

	data, err := os.ReadFile(filepath.Clean(c.PasswordFile))
	if err != nil {
		return nil, fmt.Errorf("reading password file: %w", err)
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))

	if len(data) == 0 {
		return nil, fmt.Errorf("password file %q is empty", c.PasswordFile)
	}

	return data, nil
}
