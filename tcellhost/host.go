// Package tcellhost runs a scrollfx Document in a terminal using tcell.
//
// Each terminal cell covers CellWidth x CellHeight document pixels. The mouse
// wheel, arrow keys, Page Up/Down, Home and End scroll; resizing the terminal
// resizes the document's viewport. Esc or Ctrl-C quits.
package tcellhost

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/scrollfx"
)

// Config configures Run. Zero fields take defaults.
type Config struct {
	CellWidth     float64       // document pixels per column; default 8
	CellHeight    float64       // document pixels per row; default 16
	WheelLines    int           // rows scrolled per wheel notch; default 3
	FrameInterval time.Duration // time between Document.Update calls; default 16ms
}

func (c Config) withDefaults() Config {
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
	if c.WheelLines <= 0 {
		c.WheelLines = 3
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = 16 * time.Millisecond
	}
	return c
}

// Run opens the terminal, drives doc until the user quits, and restores the
// terminal before returning.
func Run(doc *scrollfx.Document, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	h := newHost(screen, doc, cfg)
	h.run()
	return nil
}

// host owns the terminal side of one Document. All fields are touched only
// from the loop goroutine.
type host struct {
	screen tcell.Screen
	doc    *scrollfx.Document
	cfg    Config
}

func newHost(screen tcell.Screen, doc *scrollfx.Document, cfg Config) *host {
	h := &host{screen: screen, doc: doc, cfg: cfg.withDefaults()}
	w, ht := screen.Size()
	h.resize(w, ht)
	return h
}

// run is the main loop: tcell events arrive on a channel from a polling
// goroutine, and a ticker clocks frames.
func (h *host) run() {
	ticker := time.NewTicker(h.cfg.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	for {
		select {
		case ev := <-events:
			if !h.handle(ev) {
				return
			}
		case <-ticker.C:
			h.frame()
		}
	}
}

// frame advances the document one frame and repaints.
func (h *host) frame() {
	h.doc.Update()
	h.draw()
	h.screen.Show()
}

// handle applies one terminal event. Returns false when the user quits.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.resize(w, ht)
		h.screen.Sync()
	case *tcell.EventMouse:
		lines := float64(h.cfg.WheelLines) * h.cfg.CellHeight
		btn := ev.Buttons()
		if btn&tcell.WheelDown != 0 {
			h.doc.ScrollBy(lines)
		}
		if btn&tcell.WheelUp != 0 {
			h.doc.ScrollBy(-lines)
		}
	case *tcell.EventKey:
		return h.handleKey(ev.Key())
	}
	return true
}

func (h *host) handleKey(k tcell.Key) bool {
	page := h.doc.ViewportHeight() - h.cfg.CellHeight
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		h.doc.ScrollBy(h.cfg.CellHeight)
	case tcell.KeyUp:
		h.doc.ScrollBy(-h.cfg.CellHeight)
	case tcell.KeyPgDn:
		h.doc.ScrollBy(page)
	case tcell.KeyPgUp:
		h.doc.ScrollBy(-page)
	case tcell.KeyHome:
		h.doc.ScrollTo(0)
	case tcell.KeyEnd:
		if cam := h.doc.Camera(); cam.BoundsEnabled {
			h.doc.ScrollTo(cam.Bounds.Y + cam.Bounds.Height)
		}
	}
	return true
}

// resize maps a terminal size in cells to the document viewport.
func (h *host) resize(cols, rows int) {
	h.doc.Resize(float64(cols)*h.cfg.CellWidth, float64(rows)*h.cfg.CellHeight)
}

// draw paints every visible surface as a block of background-colored cells.
func (h *host) draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()

	h.doc.Walk(func(item scrollfx.DrawItem) {
		x0 := int(math.Floor(item.Screen.X / h.cfg.CellWidth))
		y0 := int(math.Floor(item.Screen.Y / h.cfg.CellHeight))
		x1 := int(math.Ceil((item.Screen.X + item.Screen.Width) / h.cfg.CellWidth))
		y1 := int(math.Ceil((item.Screen.Y + item.Screen.Height) / h.cfg.CellHeight))

		style := tcell.StyleDefault.Background(cellColor(item.Color))
		for y := max(y0, 0); y < min(y1, rows); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				h.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	})
}

// cellColor flattens a translucent color onto a black terminal background.
func cellColor(c scrollfx.Color) tcell.Color {
	a := math.Max(0, math.Min(1, c.A))
	channel := func(v float64) int32 {
		return int32(math.Round(math.Max(0, math.Min(1, v)) * a * 255))
	}
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}
