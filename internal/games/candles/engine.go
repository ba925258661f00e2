package candles

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/candle-jumper/internal/config"
	"github.com/vovakirdan/candle-jumper/internal/core"
)

// Phase is the whole-game state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseVictory
	PhaseDefeat
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventLanded EventKind = iota
	EventReward
	EventJump
	EventPlatformVanished
	EventEvicted
	EventVictory
	EventDefeat
)

// Event is one occurrence reported to observers. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind   EventKind
	Amount decimal.Decimal // EventReward
	Charge int             // EventJump: 1 for the first jump since landing
	Count  int             // EventEvicted
	X, Y   float64         // Where it happened, in world units
}

// StepReport lists the events of one step, including jumps requested since
// the previous step.
type StepReport struct {
	Events []Event
}

// Has reports whether an event of the given kind occurred.
func (r StepReport) Has(kind EventKind) bool {
	return slices.ContainsFunc(r.Events, func(e Event) bool { return e.Kind == kind })
}

// Observer is called after every step that advanced the simulation.
type Observer func(StepReport, *Engine)

// ErrBadViewport is returned for a non-positive viewport.
var ErrBadViewport = errors.New("candles: viewport must be positive")

// Engine owns the whole simulation: player, platform, camera, terrain and
// wallet. It is driven by Step and Jump and never schedules itself.
type Engine struct {
	cfg        config.CandleConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	width      float64
	height     float64
	endless    bool

	player     Player
	platform   Platform
	onPlatform bool
	camera     Camera
	terrain    *Terrain
	wallet     *Wallet
	phase      Phase

	pending   []Event
	observers []Observer
}

// NewEngine validates cfg and builds an engine for a width x height world.
// The engine starts in PhaseNotStarted with the candle window filled.
func NewEngine(cfg config.CandleConfig, width, height float64, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("candles: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrBadViewport, width, height)
	}

	diff := config.NewDifficultyManager(cfg.Difficulty, cfg.Level.Length)
	e := &Engine{
		cfg:        cfg,
		difficulty: diff,
		width:      width,
		height:     height,
		wallet:     NewWallet(cfg.Reward),
	}
	e.rng = rand.New(rand.NewSource(seed))
	e.terrain = NewTerrain(cfg.Terrain, diff, e.rng, width, height)
	e.Reset(seed)
	return e, nil
}

// SetEndless disables the victory condition.
func (e *Engine) SetEndless(endless bool) {
	e.endless = endless
}

// Endless reports whether the victory condition is disabled.
func (e *Engine) Endless() bool {
	return e.endless
}

// Observe registers fn to be called after every step.
func (e *Engine) Observe(fn Observer) {
	e.observers = append(e.observers, fn)
}

// Reset returns to PhaseNotStarted: terrain regenerated from seed, player
// back on a visible platform, score, reward and camera zeroed.
func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
	e.terrain.Reset(e.rng)
	e.wallet.Reset()
	e.camera = Camera{}
	e.phase = PhaseNotStarted
	e.pending = nil

	e.platform = Platform{RectF: placePlatform(e.cfg, e.width, e.height), Visible: true}
	e.player = Player{
		X:        e.width / 2,
		Y:        e.platform.Y - e.cfg.Player.Radius,
		Radius:   e.cfg.Player.Radius,
		MaxJumps: e.cfg.Physics.MaxJumps,
		OnGround: true,
	}
	e.onPlatform = true
	e.terrain.EnsureFilled()
}

// Start moves from PhaseNotStarted to PhaseRunning. It reports whether the
// transition happened.
func (e *Engine) Start() bool {
	if e.phase != PhaseNotStarted {
		return false
	}
	e.phase = PhaseRunning
	return true
}

// Jump applies the next jump charge. It is refused outside PhaseRunning and
// once every charge is spent, leaving the velocity untouched. Jumping off the
// start platform removes it for the rest of the run.
func (e *Engine) Jump() bool {
	if e.phase != PhaseRunning || e.player.JumpCount >= e.player.MaxJumps {
		return false
	}

	e.player.VY = jumpImpulse(e.cfg.Physics, e.player.JumpCount)
	e.player.JumpCount++
	e.pending = append(e.pending, Event{Kind: EventJump, Charge: e.player.JumpCount, X: e.player.X, Y: e.player.Y})

	if e.platform.Visible && e.onPlatform && e.player.OnGround {
		e.platform.Visible = false
		e.pending = append(e.pending, Event{Kind: EventPlatformVanished, X: e.platform.X, Y: e.platform.Y})
	}
	e.player.OnGround = false
	e.onPlatform = false
	return true
}

// Step advances the simulation by one tick scaled by dtScale and returns what
// happened. Outside PhaseRunning it does nothing.
//
// Order within a tick: integrate, resolve collisions, check the fall
// condition, move the camera, scroll and refill the terrain, check victory,
// notify observers.
func (e *Engine) Step(dtScale float64) StepReport {
	if e.phase != PhaseRunning {
		return StepReport{}
	}
	dt := core.ClampF(dtScale, 0, core.MaxDTScale)

	report := StepReport{Events: e.pending}
	e.pending = nil

	wasGrounded := e.player.OnGround
	prevBottom := e.player.Bottom()
	integrate(&e.player, e.cfg.Physics, dt)

	hit := resolve(&e.player, prevBottom, e.platform, e.terrain.Candles(), e.cfg.Physics.LandingBand)
	e.onPlatform = hit.onPlatform
	if hit.grounded() && !wasGrounded {
		report.Events = append(report.Events, Event{Kind: EventLanded, X: e.player.X, Y: hit.surface})
		if hit.candle >= 0 && hit.fallSpeed > 0 {
			amount := e.wallet.Draw(e.rng)
			e.wallet.Credit(amount)
			report.Events = append(report.Events, Event{Kind: EventReward, Amount: amount, X: e.player.X, Y: e.player.Top()})
		}
	}
	e.player.X = e.width / 2

	if e.checkDefeat(&report) {
		e.notify(report)
		return report
	}

	e.camera.Follow(e.player.Top(), e.player.Bottom(), e.height, e.cfg.Camera)

	e.terrain.Scroll(e.Speed() * dt)
	if n := e.terrain.EvictOffscreen(); n > 0 {
		report.Events = append(report.Events, Event{Kind: EventEvicted, Count: n})
	}
	e.terrain.EnsureFilled()

	e.checkVictory(&report)
	e.notify(report)
	return report
}

// checkDefeat ends the run once the player has fallen fall_margin below the
// lowest live surface. It fires at most once per run.
func (e *Engine) checkDefeat(report *StepReport) bool {
	if e.phase != PhaseRunning {
		return false
	}
	lowest, ok := e.terrain.LowestBodyBottom()
	if e.platform.Visible {
		lowest = max(lowest, e.platform.Bottom())
		ok = true
	}
	if !ok || e.player.Top() <= lowest+e.cfg.Physics.FallMargin {
		return false
	}
	e.phase = PhaseDefeat
	report.Events = append(report.Events, Event{Kind: EventDefeat, X: e.player.X, Y: e.player.Y})
	return true
}

// checkVictory ends a level-mode run once the score reaches the level length.
func (e *Engine) checkVictory(report *StepReport) bool {
	if e.endless || e.phase != PhaseRunning || e.Score() < e.cfg.Level.Length {
		return false
	}
	e.phase = PhaseVictory
	report.Events = append(report.Events, Event{Kind: EventVictory})
	return true
}

func (e *Engine) notify(report StepReport) {
	for _, fn := range e.observers {
		fn(report, e)
	}
}

// Resize changes the viewport. Terrain and platform geometry are recomputed
// before it returns. A grounded player is snapped back onto whatever it stood
// on; an airborne player and the camera keep their relative height.
func (e *Engine) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrBadViewport, width, height)
	}
	ratio := height / e.height
	standing := e.standingOn()

	e.width = width
	e.height = height
	e.terrain.Resize(width, height)
	e.platform.RectF = placePlatform(e.cfg, width, height)
	e.player.X = width / 2
	e.camera.Y *= ratio

	switch {
	case e.platform.Visible && e.onPlatform:
		e.player.Y = e.platform.Y - e.player.Radius
	case standing >= 0:
		e.player.Y = e.terrain.Candles()[standing].BodyTop() - e.player.Radius
	default:
		e.player.Y *= ratio
		e.player.OnGround = false
	}
	e.terrain.EnsureFilled()
	return nil
}

// standingOn returns the index of the candle the player rests on, or -1.
func (e *Engine) standingOn() int {
	if !e.player.OnGround || e.onPlatform {
		return -1
	}
	for i, c := range e.terrain.Candles() {
		if c.Body().OverlapsX(e.player.Left(), e.player.Right()) &&
			math.Abs(c.BodyTop()-e.player.Bottom()) <= surfaceEpsilon {
			return i
		}
	}
	return -1
}

// Player returns a copy of the player.
func (e *Engine) Player() Player {
	return e.player
}

// Platform returns a copy of the start platform.
func (e *Engine) Platform() Platform {
	return e.platform
}

// Obstacles returns a copy of the live candle window.
func (e *Engine) Obstacles() []Candle {
	return slices.Clone(e.terrain.Candles())
}

// Camera returns the camera.
func (e *Engine) Camera() Camera {
	return e.camera
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the number of candles passed.
func (e *Engine) Score() int {
	return e.terrain.Score()
}

// Progress returns score / level length, capped at 1.
func (e *Engine) Progress() float64 {
	return min(float64(e.Score())/float64(e.cfg.Level.Length), 1)
}

// Reward returns the accumulated reward.
func (e *Engine) Reward() decimal.Decimal {
	return e.wallet.Total()
}

// RewardText returns the formatted reward.
func (e *Engine) RewardText() string {
	return e.wallet.String()
}

// Speed returns the current scroll speed in world units per nominal tick.
func (e *Engine) Speed() float64 {
	return e.difficulty.Speed(e.cfg.Speed.Base, e.cfg.Speed.Gain, e.Score())
}

// PriceRange returns the extremes of every value generated this run.
func (e *Engine) PriceRange() (lo, hi float64, ok bool) {
	return e.terrain.PriceRange()
}

// Viewport returns the world size.
func (e *Engine) Viewport() (width, height float64) {
	return e.width, e.height
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.CandleConfig {
	return e.cfg
}
