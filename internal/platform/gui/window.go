// Package gui hosts the game in a desktop window through Ebitengine.
//
// The window polls the keyboard once per frame, measures the frame's Δt on
// its own clock and draws the world 1:1 in pixels. The game-over hold is
// realised on the same clock: the ended frame stays on screen until the hold
// has elapsed, then the next round starts with a freshly restarted clock.
package gui

import (
	"errors"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/platform/clock"
)

var (
	skyColor        = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	pipeColor       = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	pipeOutline     = color.RGBA{R: 0, G: 150, B: 0, A: 255}
	avatarColor     = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	avatarEyeColor  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	gameOverBgColor = color.Black
)

const (
	outlineWidth = 5
	// messageScale enlarges the debug font (6x16 cells) to roughly 48pt.
	messageScale = 4
)

// Window implements ebiten.Game around a flappy.Game.
type Window struct {
	game   *flappy.Game
	clock  clock.Clock
	logger *log.Logger
	poll   func() core.InputFrame

	width, height int
	message       *ebiten.Image
}

// NewWindow creates a window host for game. A nil clock uses the wall
// clock; a nil logger discards output.
func NewWindow(game *flappy.Game, clk clock.Clock, logger *log.Logger) *Window {
	if clk == nil {
		clk = clock.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	world := game.Simulation().Config().World
	return &Window{
		game:   game,
		clock:  clk,
		logger: logger,
		poll:   pollKeyboard,
		width:  int(world.Width),
		height: int(world.Height),
	}
}

// pollKeyboard reads the keys pressed since the previous frame.
func pollKeyboard() core.InputFrame {
	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) {
		in.Set(core.ActionJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		in.Set(core.ActionQuit)
	}
	return in
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	return w.advance(w.poll())
}

// advance runs one frame with the given input.
func (w *Window) advance(in core.InputFrame) error {
	if in.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	if st := w.game.State(); st.Ended() {
		if w.clock.Elapsed() >= st.Hold {
			w.game.Resume()
			w.clock.Restart()
			w.logger.Debug("next round")
		}
		return nil
	}

	dt := w.clock.Restart()
	if st := w.game.Step(dt, in); st.Ended() {
		// The hold starts now.
		w.clock.Restart()
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	st := w.game.State()
	if st.Ended() {
		screen.Fill(gameOverBgColor)
		w.drawMessage(screen)
		return
	}

	screen.Fill(skyColor)
	worldH := float64(w.height)
	for _, o := range st.Obstacles {
		drawPipe(screen, o.TopRect())
		drawPipe(screen, o.BottomRect(worldH))
	}
	drawAvatar(screen, st.Avatar)
}

// Layout implements ebiten.Game. The logical screen is the world itself.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

// drawPipe fills r with the outline drawn around it, outside the collision box.
func drawPipe(dst *ebiten.Image, r core.Rect) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(dst,
		float32(r.X-outlineWidth), float32(r.Y-outlineWidth),
		float32(r.W+2*outlineWidth), float32(r.H+2*outlineWidth),
		pipeOutline, false)
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), pipeColor, false)
}

func drawAvatar(dst *ebiten.Image, a flappy.Avatar) {
	b := a.Bounds()
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), avatarColor, true)
	eye := float32(b.W / 5)
	vector.DrawFilledRect(dst, float32(b.Right())-2*eye, float32(b.Y)+eye, eye, eye, avatarEyeColor, false)
}

// drawMessage prints the game-over message centered, scaled up and tinted red.
func (w *Window) drawMessage(dst *ebiten.Image) {
	text := w.game.Simulation().Config().Round.Message
	tw, th := messageSize(text)

	if w.message == nil || w.message.Bounds().Dx() != tw {
		w.message = ebiten.NewImage(tw, th)
	}
	w.message.Clear()
	ebitenutil.DebugPrintAt(w.message, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(messageScale, messageScale)
	x, y := centered(w.width, w.height, tw*messageScale, th*messageScale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.Scale(1, 0, 0, 1)
	dst.DrawImage(w.message, op)
}

// messageSize returns the unscaled size of text in the debug font.
func messageSize(text string) (int, int) {
	const glyphW, glyphH = 6, 16
	return core.Max(len([]rune(text)), 1) * glyphW, glyphH
}

// centered returns the top-left corner that centers a w×h box in the screen.
func centered(screenW, screenH, w, h int) (int, int) {
	return (screenW - w) / 2, (screenH - h) / 2
}

// Options configures the desktop window.
type Options struct {
	Title    string
	TickRate int
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game *flappy.Game, opts Options, logger *log.Logger) error {
	w := NewWindow(game, clock.NewReal(), logger)

	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(opts.Title)
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	w.logger.Info("window opened", "width", w.width, "height", w.height, "tps", ebiten.TPS())
	w.clock.Restart()
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
