// Package commands provides the command-line interface for the goctr tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - verification
//   - password generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goctr/internal/config"
)

// preRun returns a PreRunE handler that loads flags and environment variables
// into cfg, resolves positional args into cfg.Files and validates the result.
// Without arguments the current directory is used.
func preRun(v *viper.Viper, cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		switch {
		case cfg.Verbose:
			logrus.SetLevel(logrus.DebugLevel)
		case cfg.Quiet:
			logrus.SetLevel(logrus.WarnLevel)
		}

		return cfg.Validate()
	}
}
