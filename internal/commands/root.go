package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/pkg/kdf"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	cfg := &config.Config{}

	v := viper.New()
	v.SetEnvPrefix("goctr")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "goctr [flags] command [flags]",
		Short: "File encryption utility",
		Long: `A file encryption utility built on AES in counter mode.
Keys are derived from a password with scrypt and every file is authenticated with HMAC-SHA-256.
Provides commands for password generation, encryption, decryption and verification.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()

	flags.StringP("password", "p", "", "Password to derive the keys from")
	flags.StringP("password-file", "f", "", "Path to a file holding the password")
	flags.IntP("strength", "s", int(kdf.Bits256), "AES key length in bits for new files (128, 192 or 256)")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of files processed in parallel, defaults to number of CPUs")
	flags.IntP("workers", "w", runtime.NumCPU(), "Number of workers per file, defaults to number of CPUs")

	flags.Int("scrypt-n", kdf.DefaultParams.N, "scrypt CPU/memory cost, a power of two")
	flags.Int("scrypt-r", kdf.DefaultParams.R, "scrypt block size")
	flags.Int("scrypt-p", kdf.DefaultParams.P, "scrypt parallelization")

	flags.StringSliceP("include", "i", nil, "Glob patterns selecting files below directories (find -path syntax)")
	flags.StringSliceP("exclude", "e", nil, "Glob patterns excluding files below directories (find -path syntax)")
	flags.String("include-from", "", "JSONC file with an array of include patterns")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("verbose", false, "Log debug output")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("preserve-timestamps", false, "Keep the modification time of the original file")
	flags.BoolP("dry", "n", false, "Show what would be processed without doing it")

	root.AddCommand(
		NewEncryptCommand(v, cfg),
		NewDecryptCommand(v, cfg),
		NewVerifyCommand(v, cfg),
		NewGenerateCommand(),
	)

	return root
}
