package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/platform/clock"
)

// fixedSource always returns lo.
type fixedSource struct{}

func (fixedSource) IntRange(lo, _ int) int { return lo }

func newTestModel(t *testing.T) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual()
	game := flappy.NewWithSource(config.DefaultConfig(), fixedSource{}, nil)
	return NewModel(game, core.DefaultConfig(), clk, nil), clk
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestModelTickUsesElapsedTime(t *testing.T) {
	m, clk := newTestModel(t)

	clk.Advance(100 * time.Millisecond)
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}

	st := m.game.State()
	// v = 0 + 800*0.1, y = 300 + 80*0.1
	if !near(st.Avatar.Vel, 80) || !near(st.Avatar.Pos.Y, 308) {
		t.Errorf("after 0.1s: vel=%v y=%v, want 80 and 308", st.Avatar.Vel, st.Avatar.Pos.Y)
	}
	if clk.Elapsed() != 0 {
		t.Errorf("tick should restart the clock, elapsed=%v", clk.Elapsed())
	}
}

func TestModelJumpAppliesOnNextTick(t *testing.T) {
	m, clk := newTestModel(t)

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.inputFrame.Has(core.ActionJump) {
		t.Fatal("jump should be recorded in the input frame")
	}

	clk.Advance(50 * time.Millisecond)
	m, _ = update(t, m, TickMsg(time.Now()))

	st := m.game.State()
	// Two presses collapse into one: v = -350 + 800*0.05
	if !near(st.Avatar.Vel, -310) {
		t.Errorf("vel = %v, want -310", st.Avatar.Vel)
	}
	if m.inputFrame.Has(core.ActionJump) {
		t.Error("input frame should be cleared after the tick")
	}

	// No new press: gravity only.
	clk.Advance(50 * time.Millisecond)
	m, _ = update(t, m, TickMsg(time.Now()))
	if st := m.game.State(); !near(st.Avatar.Vel, -270) {
		t.Errorf("vel = %v, want -270", st.Avatar.Vel)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m, clk := newTestModel(t)

	clk.Advance(100 * time.Millisecond)
	m, _ = update(t, m, TickMsg(time.Now()))
	before := m.game.State()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 40-footerHeight {
		t.Errorf("screen = %dx%d, want 120x%d", m.screen.Width(), m.screen.Height(), 40-footerHeight)
	}
	if after := m.game.State(); after.Avatar != before.Avatar || after.Ticks != before.Ticks {
		t.Error("resize should not reset the round")
	}
}

func TestModelViewShowsGameOverAndRestarts(t *testing.T) {
	m, clk := newTestModel(t)

	// Fall until the round ends.
	for i := 0; i < 200 && !m.game.State().Ended(); i++ {
		clk.Advance(50 * time.Millisecond)
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if !m.game.State().Ended() {
		t.Fatal("round should end when the avatar falls out of the world")
	}

	view := m.View()
	if !strings.Contains(view, "Game Over!") {
		t.Errorf("view should contain the game over message:\n%s", view)
	}
	if !strings.Contains(view, "round 1") {
		t.Errorf("footer should show the ended round:\n%s", view)
	}

	// The hold elapses in real time, then the next round starts.
	clk.Advance(2 * time.Second)
	m, _ = update(t, m, TickMsg(time.Now()))
	st := m.game.State()
	if st.Ended() {
		t.Fatal("round should restart once the hold elapsed")
	}
	if st.Avatar.Pos != (core.Vec2{X: 100, Y: 300}) {
		t.Errorf("avatar = %+v, want start position", st.Avatar.Pos)
	}
}

func TestModelViewLineCount(t *testing.T) {
	m, _ := newTestModel(t)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
}
