// Package display implements the display-mode collaborator behind the W
// commands: an ebiten window showing the edit buffer around dot.
package display

import (
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/rmay/teco/pkg/teco"
)

const (
	windowWidth  = 640
	windowHeight = 400
	marginX      = 8
	marginY      = 16
)

// Window is an edit-buffer viewer. The interpreter drives it through
// the Display interface; Run owns the main goroutine as ebiten requires.
type Window struct {
	mu     sync.Mutex
	active bool
	lines  []string
	dotRow int
	dotCol int
	face   font.Face
}

// New returns an inactive window. Call Run from the main goroutine to
// open it.
func New() *Window {
	return &Window{face: basicfont.Face7x13}
}

// Active reports whether display mode is on.
func (w *Window) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SetActive switches display mode on or off.
func (w *Window) SetActive(on bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = on
	return nil
}

// Refresh snapshots the buffer contents and dot position for the next
// frame.
func (w *Window) Refresh(b teco.Buffer) {
	content := string(b.Text(0, b.Size()))
	dot := b.Dot()

	row, col := 0, 0
	for i := 0; i < dot && i < len(content); i++ {
		if content[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}

	w.mu.Lock()
	w.lines = strings.Split(content, "\n")
	w.dotRow = row
	w.dotCol = col
	w.mu.Unlock()
}

// Run opens the window and blocks until it closes. It must be called
// from the main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("teco")
	return ebiten.RunGame(w)
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	return nil
}

// Draw implements ebiten.Game: the buffer text with a block cursor at
// dot.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	lines := w.lines
	dotRow, dotCol := w.dotRow, w.dotCol
	active := w.active
	w.mu.Unlock()

	if !active {
		text.Draw(screen, "display mode off (-1W to enable)", w.face, marginX, marginY, color.Gray{Y: 0x80})
		return
	}

	lineHeight := w.face.Metrics().Height.Ceil()
	charWidth := font.MeasureString(w.face, "M").Ceil()

	for i, line := range lines {
		y := marginY + i*lineHeight
		if y > windowHeight {
			break
		}
		if i == dotRow {
			// Block cursor behind the character at dot.
			cursor := ebiten.NewImage(charWidth, lineHeight)
			cursor.Fill(color.Gray{Y: 0x60})
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(float64(marginX+dotCol*charWidth), float64(y-lineHeight+4))
			screen.DrawImage(cursor, &op)
		}
		text.Draw(screen, line, w.face, marginX, y, color.White)
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
