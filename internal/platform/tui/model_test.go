package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/candle-jumper/internal/core"
	"github.com/vovakirdan/candle-jumper/internal/storage"
)

// scriptedGame ends after a fixed number of steps with a fixed result.
type scriptedGame struct {
	resets  int
	resizes int
	inputs  []core.InputFrame
	endAt   int
	final   core.GameState
	state   core.GameState
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.inputs = nil
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	g.state.Started = true
	if g.endAt > 0 && len(g.inputs) >= g.endAt {
		g.state = g.final
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }
func (g *scriptedGame) Resize(int, int)         { g.resizes++ }

func newTestModel(g *scriptedGame, store *storage.Store) Model {
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 10, Seed: 1})
	m.Init()
	return m
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func sendKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{
		endAt: 3,
		final: core.GameState{Started: true, GameOver: true, Outcome: core.OutcomeDefeat, Score: 7, Reward: "0.084000"},
	}
	m := newTestModel(g, store)

	t0 := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		m = tick(t, m, t0.Add(time.Duration(i)*100*time.Millisecond))
	}

	runs, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one saved run, got %d", len(runs))
	}
	if runs[0].Score != 7 || runs[0].Outcome != "defeat" {
		t.Errorf("saved run = %+v", runs[0])
	}
	if !runs[0].Reward.Equal(decimal.RequireFromString("0.084")) {
		t.Errorf("saved reward = %s", runs[0].Reward)
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{
		endAt: 1,
		final: core.GameState{Started: true, GameOver: true, Outcome: core.OutcomeDefeat, Reward: "0"},
	}
	m := newTestModel(g, store)
	m = tick(t, m, time.Unix(0, 0))
	m = tick(t, m, time.Unix(1, 0))

	if high, _ := store.HighScore("scripted"); high != 0 {
		t.Errorf("empty run should not be stored, high score %d", high)
	}
}

func TestModelFeedsFrameClock(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)

	// Nominal tick at 10 Hz is 100ms
	t0 := time.Unix(100, 0)
	m = tick(t, m, t0)
	m = tick(t, m, t0.Add(200*time.Millisecond))
	m = tick(t, m, t0.Add(250*time.Millisecond))
	m = tick(t, m, t0.Add(2*time.Second))

	want := []float64{1, 2, 0.5, core.MaxDTScale}
	for i, w := range want {
		if got := g.inputs[i].DTScale; got != w {
			t.Errorf("tick %d DTScale = %g, want %g", i, got, w)
		}
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)
	resets := g.resets

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resizes != 1 {
		t.Errorf("Resize called %d times, want 1", g.resizes)
	}
	if g.resets != resets {
		t.Error("resizable games should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(g, nil)
	m = tick(t, m, time.Unix(0, 0))

	m, _ = sendKey(t, m, runeKey("r"))
	m = tick(t, m, time.Unix(1, 0))
	if g.inputs[1].Has(core.ActionRestart) {
		t.Error("restart should be ignored mid-run")
	}

	m, _ = sendKey(t, m, runeKey("w"))
	tick(t, m, time.Unix(2, 0))
	if !g.inputs[2].Has(core.ActionJump) {
		t.Error("jump should reach the game")
	}
}

func TestModelBack(t *testing.T) {
	g := &scriptedGame{}

	// Title screen: standalone model quits
	m := newTestModel(g, nil)
	m, cmd := sendKey(t, m, runeKey("b"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("back on the title screen should quit a standalone game")
	}

	// Embedded model hands control back instead
	m = newTestModel(g, nil)
	m.embedded = true
	m, cmd = sendKey(t, m, runeKey("b"))
	if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
		t.Error("back should return to the menu inside a session")
	}

	// Mid-run back is ignored
	m = newTestModel(g, nil)
	m = tick(t, m, time.Unix(0, 0))
	m, _ = sendKey(t, m, runeKey("b"))
	if m.IsQuitting() || m.BackToMenu() {
		t.Error("back should be ignored mid-run")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&scriptedGame{}, nil)
	if got := m.View(); got == "" {
		t.Error("View should render the game")
	}
}
