// Package tui hosts games in Bubble Tea: the local play loop, the mode menu,
// the scoreboard and the SSH server that serves all three per session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the host time of one simulation tick. The model feeds it
// to a core.FrameClock to get the tick's dtScale.
type TickMsg time.Time

// tickInterval is the nominal time between ticks.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
