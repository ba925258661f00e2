// Package candles implements Candle Jumper, an endless runner across a
// scrolling candlestick chart. The player hops from candle body to candle
// body, earning a cosmetic reward per landing, until the level is passed or
// the player falls below the chart.
package candles

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candle-jumper/internal/config"
	"github.com/vovakirdan/candle-jumper/internal/core"
	"github.com/vovakirdan/candle-jumper/internal/registry"
)

// Rows reserved for the HUD (top) and the progress bar (bottom).
const hudRows = 2

// Popup lifetime in nominal ticks.
const popupTTL = 45.0

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads the configuration selected on the command line and applies
// the difficulty preset.
func LoadConfig() (config.CandleConfig, error) {
	cfg, err := config.LoadCandles(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyCandlePreset(&cfg, difficultyPreset)
	return cfg, nil
}

// popup is a floating "+reward" label.
type popup struct {
	text string
	x, y float64 // World units
	ttl  float64
}

// Game adapts the Engine to the arcade host.
type Game struct {
	endless bool
	runtime core.RuntimeConfig
	cfg     config.CandleConfig
	engine  *Engine
	paused  bool
	popups  []popup
}

// New creates a level-mode game.
func New() *Game {
	return &Game{}
}

// NewEndless creates a game without a victory condition.
func NewEndless() *Game {
	return &Game{endless: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.endless {
		return "candles_endless"
	}
	return "candles"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.endless {
		return "Candle Jumper (Endless)"
	}
	return "Candle Jumper"
}

// Description returns the menu blurb for the mode.
func (g *Game) Description() string {
	if g.endless {
		return "No finish line. The market only gets wilder."
	}
	return "Ride the chart to the last candle of the level."
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil {
		log.Warn("invalid config, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultCandleConfig()
		config.ApplyCandlePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	w, h := g.worldSize(runtime.ScreenW, runtime.ScreenH)
	engine, err := NewEngine(cfg, w, h, runtime.Seed)
	if err != nil {
		// worldSize never returns an empty viewport and both configs are validated.
		panic(fmt.Sprintf("candles: %v", err))
	}
	engine.SetEndless(g.endless)
	engine.Observe(g.onStep)

	g.engine = engine
	g.paused = false
	g.popups = g.popups[:0]
}

// worldSize converts the play area in cells to world units.
func (g *Game) worldSize(cols, rows int) (float64, float64) {
	cols = max(cols, 1)
	rows = max(rows-hudRows, 1)
	return float64(cols) * g.cfg.Display.CellWidth, float64(rows) * g.cfg.Display.CellHeight
}

// Resize changes the screen size without restarting the run.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	if g.engine == nil {
		return
	}
	w, h := g.worldSize(cols, rows)
	if err := g.engine.Resize(w, h); err != nil {
		log.Warn("resize rejected", "cols", cols, "rows", rows, "err", err)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.engine.Phase()

	if in.Has(core.ActionPause) && phase == PhaseRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case phase == PhaseNotStarted:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.engine.Start()
		}
	case phase == PhaseRunning:
		if in.Has(core.ActionJump) {
			g.engine.Jump()
		}
		g.engine.Step(in.Scale())
	case phase.Terminal():
		if in.Has(core.ActionRestart) {
			g.runtime.Seed++
			g.engine.Reset(g.runtime.Seed)
			g.popups = g.popups[:0]
		}
	}

	g.agePopups(in.Scale())
	return core.StepResult{State: g.State()}
}

// onStep collects reward popups from the engine's step reports.
func (g *Game) onStep(report StepReport, _ *Engine) {
	for _, ev := range report.Events {
		if ev.Kind != EventReward {
			continue
		}
		g.popups = append(g.popups, popup{
			text: "+" + ev.Amount.StringFixed(g.cfg.Reward.Precision),
			x:    ev.X,
			y:    ev.Y,
			ttl:  popupTTL,
		})
	}
}

// agePopups drifts popups upward and drops expired ones.
func (g *Game) agePopups(dt float64) {
	live := g.popups[:0]
	for _, p := range g.popups {
		p.ttl -= dt
		p.y -= dt
		if p.ttl > 0 {
			live = append(live, p)
		}
	}
	g.popups = live
}

// Engine returns the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	outcome := core.OutcomeNone
	switch g.engine.Phase() {
	case PhaseVictory:
		outcome = core.OutcomeVictory
	case PhaseDefeat:
		outcome = core.OutcomeDefeat
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Reward:   g.engine.Reward().StringFixed(g.cfg.Reward.Precision),
		Progress: g.engine.Progress(),
		Started:  g.engine.Phase() != PhaseNotStarted,
		GameOver: g.engine.Phase().Terminal(),
		Outcome:  outcome,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("candles", func() registry.Game {
		return New()
	})
	registry.Register("candles_endless", func() registry.Game {
		return NewEndless()
	})
}
