package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candle-jumper/internal/core"
	"github.com/vovakirdan/candle-jumper/internal/games/candles"
	"github.com/vovakirdan/candle-jumper/internal/platform/tui"
	"github.com/vovakirdan/candle-jumper/internal/registry"
	"github.com/vovakirdan/candle-jumper/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode defaults to the 1000-candle level.

Controls:
  Space/Up/W - Start, jump (up to three times in the air)
  P/Esc      - Pause
  R          - Restart (after the run ends)
  B          - Leave (title or result screen)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  candlejump play
  candlejump play candles_endless
  candlejump play --difficulty hard --seed 42
  candlejump play --config ./my-candles.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", envOr("CANDLEJUMP_CONFIG", ""), "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// applyGameFlags hands --config and --difficulty to the game package and
// checks the configuration before the terminal is taken over.
func applyGameFlags() {
	candles.SetConfigPath(flagConfig)
	candles.SetDifficultyPreset(flagDifficulty)
	if _, err := candles.LoadConfig(); err != nil {
		fail("%v", err)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run history. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open run database, scores will not be saved", "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown game mode %q\nRun 'candlejump list' to see available modes.", gameID)
	}
	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore()
	restore := redirectLogs()
	runErr := tui.Run(game, store, runtimeConfig())
	restore()

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
