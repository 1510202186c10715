package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSender struct {
	ch chan tea.Msg
}

func (c *chanSender) Send(msg tea.Msg) {
	c.ch <- msg
}

func guyWorld(t *testing.T) *world.World {
	t.Helper()
	tree := world.NewTree(world.Node{Text: "He waves."})
	_, err := tree.AddChild(world.Root, world.Simple("k"), world.Node{Text: "TEST"})
	require.NoError(t, err)
	w := world.NewWorld()
	require.NoError(t, w.AddEvent(world.Pos{X: 1, Y: 0}, &world.Event{Preview: "There is a guy", Tree: tree}))
	return w
}

// pump feeds engine messages into the model until the engine asks for input
// or stops.
func pump(t *testing.T, m ConsoleUI, ch chan tea.Msg) ConsoleUI {
	t.Helper()
	for {
		select {
		case msg := <-ch:
			model, _ := m.Update(msg)
			m = model.(ConsoleUI)
			switch msg.(type) {
			case promptMsg, engineDoneMsg:
				return m
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for the engine")
		}
	}
}

func enter(t *testing.T, m ConsoleUI, line string) ConsoleUI {
	t.Helper()
	m.textarea.SetValue(line)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	return model.(ConsoleUI)
}

func TestConsoleUI_DrivesEngine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &chanSender{ch: make(chan tea.Msg, 64)}
	b := newBridge()
	b.program = sender
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewConsoleUI(ctx, &config.Config{}, nil, "guy.json", log, b)

	model, run := m.Update(worldLoadedMsg{world: guyWorld(t), state: state.New(world.Pos{}, nil)})
	m = model.(ConsoleUI)
	require.NotNil(t, run)
	go func() { sender.ch <- run() }()

	m = pump(t, m, sender.ch)
	assert.True(t, m.waiting)
	assert.Contains(t, m.plainTranscript(), "You are at (0, 0)\n")

	m = enter(t, m, "d")
	assert.False(t, m.waiting)
	m = pump(t, m, sender.ch)
	assert.Equal(t, world.Pos{X: 1, Y: 0}, m.snapshot.Pos)
	assert.Contains(t, m.plainTranscript(), "> d\nYou are at (1, 0)\nThere is a guy\n")

	m = enter(t, m, "f")
	m = pump(t, m, sender.ch)
	assert.True(t, m.snapshot.InEvent)
	assert.Contains(t, writeMetadata(m.snapshot), "In event, depth 0")

	cancel()
	m = enter(t, m, "k")
	m = pump(t, m, sender.ch)
	assert.True(t, m.done)
	assert.NoError(t, m.err)
	assert.True(t, strings.HasSuffix(m.plainTranscript(), "> k\n"))
}

func TestConsoleUI_EnterIgnoredWhileEngineBusy(t *testing.T) {
	b := newBridge()
	m := NewConsoleUI(context.Background(), &config.Config{}, nil, "guy.json", slog.Default(), b)
	m.textarea.SetValue("d")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.transcript)
}

func TestWriteMetadata(t *testing.T) {
	assert.Contains(t, writeMetadata(nil), "Loading...")

	st := state.New(world.Pos{X: -2, Y: 3}, []world.Item{
		{ID: 1, Name: "old key", Type: world.Normal()},
		{ID: 2, Name: "sword", Type: world.Weapon(4)},
	})
	meta := writeMetadata(st)
	assert.Contains(t, meta, "(-2, 3)")
	assert.Contains(t, meta, "0. Old Key")
	assert.Contains(t, meta, "1. Sword: 4 Damage")
	assert.Contains(t, meta, "w/a/s/d: Move")

	assert.Contains(t, writeMetadata(state.New(world.Pos{}, nil)), "Empty")
}

func TestPlainTranscript(t *testing.T) {
	m := ConsoleUI{transcript: []entry{
		{kind: entryOutput, text: "You are at (0, 0)\n"},
		{kind: entryInput, text: "e"},
		{kind: entryOutput, text: "0. key\n"},
		{kind: entryPrompt, text: "Which Item?   "},
		{kind: entryError, text: "Error: boom"},
	}}
	assert.Equal(t, "You are at (0, 0)\n> e\n0. key\nWhich Item?   \nError: boom\n", m.plainTranscript())
}
