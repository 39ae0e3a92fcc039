// Lsbsteg hides a short text message in the least significant bits of an
// image and reads it back.
//
// Usage:
//
//	lsbsteg encode --in carrier.png --out secret.png --message "meet at noon"
//	lsbsteg decode --in secret.png
//	lsbsteg capacity --in carrier.png
//	lsbsteg diff --original carrier.png --modified secret.png
//
// Encoded images must be written in a lossless format (png, bmp or tiff);
// any re-encoding that changes channel values destroys the message.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/lsb_steg/internal/config"
	"github.com/yyyoichi/lsb_steg/internal/logging"
	"github.com/yyyoichi/lsb_steg/internal/version"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lsbsteg",
	Short: "Hide text in the least significant bits of an image",
	Long: `lsbsteg hides a text message in an image by replacing the least significant
bit of every red, green and blue value, and recovers it later.

The message is terminated with "%%%". Each character must have a code point
below 256. Nothing is encrypted: anyone who knows the scheme can read it.`,
	Version:       version.Full(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := logLevel
		if level == "" {
			level = cfg.LogLevel
		}
		return logging.Initialize(level)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lsbsteg/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lsbsteg %s\n", version.Full())
	},
}
