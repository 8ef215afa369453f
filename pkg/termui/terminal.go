// Package termui renders the effects into a terminal with tcell.
//
// One cell stands for CellWidth x CellHeight pixels of the virtual viewport,
// so tier resolution and keyframe math run unchanged. Mouse motion, clicks and
// resizes are mapped to the same Manager triggers the window build uses.
package termui

import (
	"context"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/effects"
)

const (
	// CellWidth and CellHeight are the pixel size of one terminal cell.
	CellWidth  = 8
	CellHeight = 16

	frameInterval = 16 * time.Millisecond // ~60 FPS
)

// Terminal drives a Manager from tcell events and draws its registry.
type Terminal struct {
	screen  tcell.Screen
	manager *effects.Manager
	watcher *config.Watcher

	cols, rows int
	background color.RGBA

	mouseX, mouseY int
	mouseSeen      bool
	buttons        tcell.ButtonMask
}

// New wraps an initialized screen. Mouse reporting is enabled here.
func New(screen tcell.Screen, manager *effects.Manager) *Terminal {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	t := &Terminal{
		screen:     screen,
		manager:    manager,
		background: manager.Config().BackgroundColor(),
	}
	t.resize(screen.Size())
	return t
}

// Watch polls w once per frame and applies changed config files.
func (t *Terminal) Watch(w *config.Watcher) {
	t.watcher = w
}

// ToPixels maps a cell to the pixel at its center.
func ToPixels(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

// ToCell maps a pixel to the cell containing it.
func ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (t *Terminal) resize(cols, rows int) {
	t.cols, t.rows = cols, rows
	t.manager.Resize(cols*CellWidth, rows*CellHeight)
	log.Printf("[Terminal] Resized to %dx%d cells", cols, rows)
}

// Run loads the effects and loops until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	t.manager.Load()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			t.pollConfig()
			t.manager.Update(now.Sub(last))
			last = now
			t.Draw()
		}
	}
}

// pollConfig keeps the previous config when the new file does not load.
func (t *Terminal) pollConfig() {
	if t.watcher == nil {
		return
	}
	path, ok := t.watcher.Poll()
	if !ok {
		return
	}
	next, err := config.LoadEffectsConfig(path)
	if err == nil {
		err = t.manager.ApplyConfig(next)
	}
	if err != nil {
		log.Printf("[Terminal] Config reload failed, keeping previous: %v", err)
		return
	}
	t.background = next.BackgroundColor()
	log.Printf("[Terminal] Reloaded %s", path)
}

// handleEvent returns false when the user asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			t.manager.Click(ToPixels(t.cols/2, t.rows/2))
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := ToPixels(col, row)

		if t.mouseSeen && (col != t.mouseX || row != t.mouseY) {
			t.manager.PointerMove(x, y)
		}
		t.mouseX, t.mouseY, t.mouseSeen = col, row, true

		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0 {
			t.manager.Click(x, y)
		}
		t.buttons = buttons

	case *tcell.EventResize:
		t.resize(ev.Size())
		t.screen.Sync()
	}
	return true
}
