package scrollfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// defaultWheelSpeed is the scroll distance in pixels per wheel notch.
const defaultWheelSpeed = 40

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window; each new size reaches the
	// document as a Resize.
	Resizable bool
	// WheelSpeed is the scroll distance per wheel notch. Defaults to 40.
	WheelSpeed float64
	// KeyScrollSpeed is the scroll distance per frame while an arrow key is
	// held. Defaults to WheelSpeed / 4.
	KeyScrollSpeed float64
	// Update, if set, runs after the document's Update every frame.
	// Returning an error stops the loop.
	Update func() error
}

// game adapts a Document to ebiten.Game.
type game struct {
	doc *Document
	cfg RunConfig

	pendingW, pendingH int
}

// Run opens a window and drives doc until the window is closed or Escape is
// pressed. The mouse wheel, arrow keys, Page Up/Down, Home and End scroll
// the document.
func Run(doc *Document, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(doc.camera.Viewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(doc.camera.Viewport.Height)
	}
	if cfg.WheelSpeed == 0 {
		cfg.WheelSpeed = defaultWheelSpeed
	}
	if cfg.KeyScrollSpeed == 0 {
		cfg.KeyScrollSpeed = cfg.WheelSpeed / 4
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{doc: doc, cfg: cfg, pendingW: cfg.Width, pendingH: cfg.Height}
	doc.Resize(float64(cfg.Width), float64(cfg.Height))
	return ebiten.RunGame(g)
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Layout may run outside Update; apply its size here so listeners see a
	// resize on the loop's own schedule.
	g.doc.Resize(float64(g.pendingW), float64(g.pendingH))

	if dy := g.scrollInput(); dy != 0 {
		g.doc.ScrollBy(dy)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.doc.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		if g.doc.camera.BoundsEnabled {
			b := g.doc.camera.Bounds
			g.doc.ScrollTo(b.Y + b.Height)
		}
	}

	g.doc.Update()

	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

// scrollInput converts this frame's wheel and key input to a scroll delta.
func (g *game) scrollInput() float64 {
	_, wy := ebiten.Wheel()
	dy := -wy * g.cfg.WheelSpeed

	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += g.cfg.KeyScrollSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= g.cfg.KeyScrollSpeed
	}
	page := g.doc.camera.Viewport.Height * 0.9
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		dy += page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		dy -= page
	}
	return dy
}

func (g *game) Draw(screen *ebiten.Image) {
	g.doc.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
