package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/platform/clock"
)

// footerHeight is the number of rows reserved below the play area.
const footerHeight = 1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model running one game.
type Model struct {
	game       *flappy.Game
	screen     *core.Screen
	clock      clock.Clock
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given game.
// A nil clock uses the wall clock; a nil logger discards output.
func NewModel(game *flappy.Game, cfg core.RuntimeConfig, clk clock.Clock, logger *log.Logger) Model {
	if clk == nil {
		clk = clock.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-footerHeight, 1)),
		clock:      clk,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
}

// Init starts the frame clock and the tick loop.
func (m Model) Init() tea.Cmd {
	m.clock.Restart()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the action for the next frame. Presses between two
// frames collapse into one.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keys.Map(msg); action {
	case core.ActionQuit:
		m.quitting = true
		state := m.game.State()
		m.logger.Info("quit", "rounds", state.Rounds, "round_time", state.RoundTime)
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize only resizes the screen; the world is scaled to fit, so the
// round in progress is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by the time elapsed since the previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.clock.Restart()
	m.game.Step(dt, m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text under
// ~/.flapper/screenshots and returns the file path.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".flapper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the play area and a one-line footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

// footer shows the round counter, the round clock and the key help.
func (m Model) footer() string {
	state := m.game.State()
	round := state.Rounds
	if !state.Ended() {
		round++
	}
	status := footerStyle.Render(fmt.Sprintf("round %d  %5.1fs  ", round, state.RoundTime))
	return status + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for game on the local terminal.
func Run(game *flappy.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, clock.NewReal(), logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
