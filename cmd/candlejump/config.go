package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candle-jumper/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it to ~/.candlejump/configs/candles.yaml or pass it with --config,
then keep only the keys you want to change.

Examples:
  candlejump config > ~/.candlejump/configs/candles.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := os.Stdout.Write(config.GetDefaultYAML(defaultGameID)); err != nil {
			fail("%v", err)
		}
	},
}
