package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates a new cobra command that prints a random password.
func NewGenerateCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a random password",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if length < 1 {
				return fmt.Errorf("length must be positive, got %d", length)
			}

			password := make([]byte, length)
			if _, err := rand.Read(password); err != nil {
				return fmt.Errorf("generating password: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(password))

			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 32, "Number of random bytes, printed hex-encoded")

	return cmd
}
