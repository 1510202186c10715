package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/exploration/pkg/reality"
	"github.com/jwebster45206/exploration/pkg/state"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// outputMsg carries text the engine wrote.
type outputMsg string

// promptMsg tells the UI the engine is waiting for a line. The snapshot is
// taken on the engine goroutine, between turns.
type promptMsg struct {
	prompt   string
	snapshot *state.State
}

// engineDoneMsg is sent when the turn loop returns.
type engineDoneMsg struct {
	err error
}

// bridge connects the blocking turn loop to the bubbletea event loop. The
// engine runs on its own goroutine and is the only one touching its State;
// the UI only ever sees snapshots.
type bridge struct {
	program sender
	lines   chan string
	reality *reality.Reality
}

func newBridge() *bridge {
	return &bridge{lines: make(chan string, 1)}
}

// Prompt implements reality.Prompter.
func (b *bridge) Prompt(prompt string) string {
	var snap *state.State
	if b.reality != nil {
		snap = b.reality.Snapshot()
	}
	b.program.Send(promptMsg{prompt: prompt, snapshot: snap})
	line, ok := <-b.lines
	if !ok {
		return ""
	}
	return line
}

// Write implements io.Writer for engine output.
func (b *bridge) Write(p []byte) (int, error) {
	b.program.Send(outputMsg(string(p)))
	return len(p), nil
}

// submit hands a line to the waiting engine.
func (b *bridge) submit(line string) tea.Cmd {
	return func() tea.Msg {
		b.lines <- line
		return nil
	}
}
