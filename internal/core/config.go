package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use it to size their world and to seed deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// Outcome describes how a finished game ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// GameState is the platform-facing summary of a game.
type GameState struct {
	Score    int     // Segments passed
	Reward   string  // Cosmetic reward total, fixed-point text
	Progress float64 // Level completion in [0, 1]
	Started  bool    // Whether the run has left the title screen
	GameOver bool
	Outcome  Outcome // Set once GameOver is true
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
