package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/internal/logic"
)

// NewVerifyCommand creates a new cobra command for the verify subcommand.
// Verification authenticates encrypted files without writing any output.
func NewVerifyCommand(v *viper.Viper, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "verify [flags] [paths...]",
		Aliases: []string{"ver"},
		Short:   "Check that encrypted files are intact and the password is correct",
		Args:    cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := preRun(v, cfg)(cmd, args); err != nil {
				return err
			}

			cfg.Verify = true

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
