// Package tui is the Bubble Tea front end: title menu, the stage view with
// its HUD, result screens, the records table and the SSH server that hands
// each connection its own campaign.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one render frame.
type TickMsg time.Time

// stageClearedMsg ends the pause after a cleared stage.
type stageClearedMsg struct{}

// tickCmd sends a TickMsg after one frame at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// clearPauseCmd fires stageClearedMsg after d.
func clearPauseCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return stageClearedMsg{}
	})
}
