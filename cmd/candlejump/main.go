// candlejump is an endless runner over a candlestick chart, played in the terminal.
//
// Usage:
//
//	candlejump list              - List game modes
//	candlejump play [mode]       - Play a mode (default: candles)
//	candlejump menu              - Start menu to pick a mode interactively
//	candlejump serve             - Start SSH server for remote play
//	candlejump scores [mode]     - Show high scores for a mode
//	candlejump config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.candlejump/runs.db)
//
// Defaults for --db, --config and --ssh may also come from the environment
// (CANDLEJUMP_DB, CANDLEJUMP_CONFIG, CANDLEJUMP_SSH_ADDR), including a .env
// file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/candle-jumper/internal/games/candles"
)

const defaultGameID = "candles"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	// A missing .env is normal
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "candlejump",
		Short: "Candle Jumper - hop across a candlestick chart in your terminal",
		Long: `Candle Jumper is an endless runner drawn as a price chart.
Candles scroll in from the right; land on their bodies, chain up to
three jumps, and don't fall below the lowest candle.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default configuration

Examples:
  candlejump play
  candlejump play candles_endless --difficulty hard
  candlejump menu
  candlejump serve --ssh :2222
  candlejump scores candles`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogging()
		},
	}

	root.PersistentFlags().IntVar(&flagFPS, "fps", envInt("CANDLEJUMP_FPS", 60), "Tick rate (frames per second)")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", envOr("CANDLEJUMP_DB", "~/.candlejump/runs.db"), "Path to run history database")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", os.Getenv("CANDLEJUMP_LOG"), "Write logs to this file while a game is on screen")

	root.AddCommand(listCmd)
	root.AddCommand(playCmd)
	root.AddCommand(menuCmd)
	root.AddCommand(serveCmd)
	root.AddCommand(scoresCmd)
	root.AddCommand(configCmd)
	return root
}

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// configureLogging sets the level from CANDLEJUMP_LOG_LEVEL.
func configureLogging() {
	if lvl := os.Getenv("CANDLEJUMP_LOG_LEVEL"); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			log.Warn("unknown log level", "level", lvl)
			return
		}
		log.SetLevel(level)
	}
}

// redirectLogs sends log output to --log-file while the alt screen is up,
// or discards it when no file was given. The returned func restores stderr.
func redirectLogs() func() {
	if flagLogFile == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Warn("cannot open log file, logging disabled", "path", flagLogFile, "err", err)
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
