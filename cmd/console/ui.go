package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/pkg/reality"
	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/storage"
	"github.com/jwebster45206/exploration/pkg/world"
	"github.com/jwebster45206/exploration/pkg/worlddoc"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const PlaceHolderText = "w/a/s/d to move, f to interact..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx    context.Context
	config *config.Config
	store  storage.Storage
	logger *slog.Logger
	bridge *bridge

	transcript []entry
	snapshot   *state.State
	waiting    bool // engine is blocked on a line
	done       bool // turn loop has returned
	status     string

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error

	// World selection state
	showWorldModal bool
	worlds         []string
	selectedWorld  int
	loadingWorlds  bool
	worldName      string

	// Quit confirmation state
	showQuitModal bool
}

type entryKind int

const (
	entryOutput entryKind = iota
	entryPrompt
	entryInput
	entryError
)

// entry is one piece of the transcript, kept unstyled so it can be rewrapped
// and copied as plain text.
type entry struct {
	kind entryKind
	text string
}

func (e entry) render(width int) string {
	wrapped := strings.TrimSuffix(wordwrap.String(e.text, width), "\n")
	switch e.kind {
	case entryPrompt:
		return promptStyle.Render(wrapped) + "\n"
	case entryInput:
		return userStyle.Render("> "+wrapped) + "\n"
	case entryError:
		return errorStyle.Render(wrapped) + "\n"
	default:
		return outputStyle.Render(wrapped) + "\n"
	}
}

type worldsLoadedMsg struct {
	worlds []string
	err    error
}

type worldLoadedMsg struct {
	world *world.World
	state *state.State
	err   error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var titleCaser = cases.Title(language.English)

func NewConsoleUI(ctx context.Context, cfg *config.Config, store storage.Storage, worldName string, logger *slog.Logger, b *bridge) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:            ctx,
		config:         cfg,
		store:          store,
		logger:         logger,
		bridge:         b,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		worldName:      worldName,
		showWorldModal: worldName == "",
		loadingWorlds:  worldName == "",
	}
}

func writeMetadata(snap *state.State) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")
	if snap == nil {
		content.WriteString("Loading...\n")
		return content.String()
	}

	content.WriteString("Session ID:\n")
	content.WriteString(snap.ID.String()[:8] + "...\n\n")

	content.WriteString("Position:\n")
	content.WriteString(snap.Pos.String() + "\n\n")

	switch {
	case snap.InEvent:
		content.WriteString(fmt.Sprintf("In event, depth %d\n\n", len(snap.Path)))
	case snap.Event != nil:
		content.WriteString("Something is here (f)\n\n")
	}

	content.WriteString("Inventory:\n")
	if len(snap.Inventory) == 0 {
		content.WriteString("Empty\n")
	}
	for i, it := range snap.Inventory {
		content.WriteString(fmt.Sprintf("%d. %s\n", i, titleCaser.String(it.Describe())))
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	if snap.InEvent {
		content.WriteString("• q: Step back\n")
		content.WriteString("• e: Use item\n")
	} else {
		content.WriteString("• w/a/s/d: Move\n")
		content.WriteString("• f: Interact\n")
		content.WriteString("• i: Inventory\n")
	}
	content.WriteString("• Ctrl+Y: Copy log\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("EXPLORATION") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")
	for _, e := range m.transcript {
		content.WriteString(e.render(chatWidth))
	}
	if m.status != "" {
		content.WriteString("\n" + loadingStyle.Render(m.status) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) appendTranscript(kind entryKind, text string) {
	m.transcript = append(m.transcript, entry{kind: kind, text: text})
	m.writeChatContent()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showWorldModal {
		return m.loadWorlds()
	}
	return tea.Batch(m.loadWorld(m.worldName), textarea.Blink)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Engine traffic is handled regardless of which view is showing.
	switch msg := msg.(type) {
	case outputMsg:
		m.appendTranscript(entryOutput, string(msg))
		return m, nil

	case promptMsg:
		m.waiting = true
		if msg.snapshot != nil {
			m.snapshot = msg.snapshot
			m.metaViewport.SetContent(writeMetadata(m.snapshot))
		}
		if msg.prompt != "" {
			m.appendTranscript(entryPrompt, msg.prompt)
		}
		return m, nil

	case engineDoneMsg:
		m.done = true
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			m.appendTranscript(entryError, "Error: "+msg.err.Error())
		}
		return m, nil

	case worldLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.appendTranscript(entryError, fmt.Sprintf("Failed to load world: %v", msg.err))
			return m, nil
		}
		return m, m.startEngine(msg.world, msg.state)
	}

	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if !m.ready {
			m.ready = true
		}
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.snapshot))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
				m.status = "Copy failed: " + err.Error()
			} else {
				m.status = "Transcript copied to clipboard"
			}
			m.writeChatContent()
			return m, nil

		case tea.KeyEnter:
			if !m.waiting || m.done {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			m.waiting = false
			m.status = ""
			m.appendTranscript(entryInput, input)
			return m, m.bridge.submit(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// plainTranscript is the transcript as the line console would have shown it.
func (m ConsoleUI) plainTranscript() string {
	var b strings.Builder
	for _, e := range m.transcript {
		switch e.kind {
		case entryOutput:
			b.WriteString(e.text)
		case entryInput:
			b.WriteString("> " + e.text + "\n")
		default:
			b.WriteString(e.text + "\n")
		}
	}
	return b.String()
}

func (m ConsoleUI) startEngine(w *world.World, st *state.State) tea.Cmd {
	r := reality.New(w, st, m.bridge, m.bridge,
		reality.WithLogger(m.logger),
		reality.WithLeaveAtRoot(m.config.LeaveAtRoot),
	)
	m.bridge.reality = r
	ctx := m.ctx
	return func() tea.Msg {
		return engineDoneMsg{err: r.Run(ctx)}
	}
}

func (m ConsoleUI) loadWorlds() tea.Cmd {
	return func() tea.Msg {
		names, err := m.store.ListWorlds(m.ctx)
		return worldsLoadedMsg{names, err}
	}
}

func (m ConsoleUI) loadWorld(name string) tea.Cmd {
	return func() tea.Msg {
		w, st, err := worlddoc.LoadFrom(m.ctx, m.store, name)
		if err == nil {
			m.logger.Info("World loaded", "name", name, "events", w.Len())
		}
		return worldLoadedMsg{w, st, err}
	}
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case worldsLoadedMsg:
		m.loadingWorlds = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.worlds = msg.worlds
		}

	case tea.KeyMsg:
		if m.loadingWorlds {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			m.showWorldModal = false
			return m, nil
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			if len(m.worlds) > 0 && m.err == nil {
				m.worldName = m.worlds[m.selectedWorld]
				m.showWorldModal = false
				m.resize()
				m.ready = m.width > 0
				m.writeChatContent()
				m.textarea.Focus()
				return m, tea.Batch(m.loadWorld(m.worldName), textarea.Blink)
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.worldName == "" {
					m.showWorldModal = true
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to stop exploring?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingWorlds:
		content.WriteString(modalTitleStyle.Render("Loading Worlds..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we look for worlds..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to list worlds: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case len(m.worlds) == 0:
		content.WriteString(modalTitleStyle.Render("No Worlds"))
		content.WriteString("\n\n")
		content.WriteString("No world documents were found.\n\n")
		content.WriteString("Press Ctrl+C to exit")
	default:
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")

		for i, name := range m.worlds {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
