package termui

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/effects"
	"github.com/decker502/balloons/pkg/embedded"
	"github.com/decker502/balloons/pkg/utils"
)

func TestMain(m *testing.M) {
	embedded.Init(os.DirFS("../.."))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	cfg, err := config.LoadDefaultEffectsConfig()
	if err != nil {
		t.Fatalf("LoadDefaultEffectsConfig failed: %v", err)
	}
	manager, err := effects.NewManager(cfg, effects.WithRand(utils.NewRand(1)))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	return New(screen, manager), screen
}

func balloonCount(term *Terminal) int {
	return ecs.CountWith[*components.BalloonComponent](term.manager.EntityManager())
}

func TestCellMapping(t *testing.T) {
	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{7.9, 15.9, 0, 0},
		{8, 16, 1, 1},
		{100, 100, 12, 6},
		{-1, -1, -1, -1},
	}
	for _, tt := range tests {
		col, row := ToCell(tt.x, tt.y)
		if col != tt.col || row != tt.row {
			t.Errorf("ToCell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, col, row, tt.col, tt.row)
		}
	}

	x, y := ToPixels(3, 2)
	if x != 28 || y != 40 {
		t.Errorf("ToPixels(3, 2) = (%v, %v), want (28, 40)", x, y)
	}
}

// TestTerminalResizeMapsToTiers 终端尺寸按 8x16 像素换算后解析分档
func TestTerminalResizeMapsToTiers(t *testing.T) {
	term, _ := newTestTerminal(t, 80, 24)
	if got := term.manager.Profile(); got.Width != 640 || got.Tier != config.TierMedium {
		t.Errorf("80 cols should be 640px medium, got %+v", got)
	}

	tests := []struct {
		cols int
		tier config.Tier
	}{
		{40, config.TierNarrow},
		{60, config.TierNarrow},
		{61, config.TierMedium},
		{120, config.TierWide},
	}
	for _, tt := range tests {
		term.handleEvent(tcell.NewEventResize(tt.cols, 30))
		if got := term.manager.Profile().Tier; got != tt.tier {
			t.Errorf("%d cols: tier = %s, want %s", tt.cols, got, tt.tier)
		}
	}
}

// TestTerminalMouseClick 按下左键触发一次连发，按住不重复触发
func TestTerminalMouseClick(t *testing.T) {
	term, _ := newTestTerminal(t, 120, 40)

	term.handleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	term.handleEvent(tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	term.handleEvent(tcell.NewEventMouse(11, 10, tcell.ButtonNone, tcell.ModNone))
	term.manager.Update(time.Second)

	if got := balloonCount(term); got != 2 {
		t.Errorf("One press should burst 2 balloons, got %d", got)
	}

	term.handleEvent(tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	term.manager.Update(time.Second)
	if got := balloonCount(term); got != 4 {
		t.Errorf("Second press should burst 2 more, got %d", got)
	}
}

func TestTerminalQuitKeys(t *testing.T) {
	term, _ := newTestTerminal(t, 80, 24)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		keep bool
	}{
		{"Esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"Ctrl-C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		if got := term.handleEvent(tt.ev); got != tt.keep {
			t.Errorf("%s: handleEvent = %v, want %v", tt.name, got, tt.keep)
		}
	}
}

// TestTerminalDrawAnchor 锚点文字居中绘制在锚点所在行
func TestTerminalDrawAnchor(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	term.Draw()

	// 384px * 0.42 = 161.28 -> 第 10 行
	var line strings.Builder
	for col := 0; col < 80; col++ {
		r, _, _, _ := screen.GetContent(col, 10)
		line.WriteRune(r)
	}
	if !strings.Contains(line.String(), "Happy Birthday!") {
		t.Errorf("Row 10 = %q, want anchor text", line.String())
	}
}

// TestTerminalDrawBalloon 气球画成实心块
func TestTerminalDrawBalloon(t *testing.T) {
	term, screen := newTestTerminal(t, 120, 40)
	term.manager.Click(0, 0)
	term.manager.Update(time.Second)
	term.Draw()

	cells, _, _ := screen.GetContents()
	blocks := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == '█' {
			blocks++
		}
	}
	if blocks == 0 {
		t.Error("Visible balloons should be drawn as block cells")
	}
}

func TestEllipseCells(t *testing.T) {
	cx, cy := ToPixels(10, 10)
	cells := ellipseCells(cx, cy, 28, 35)
	if len(cells) == 0 {
		t.Fatal("Expected cells for a balloon-sized ellipse")
	}
	found := false
	for _, c := range cells {
		if c == [2]int{10, 10} {
			found = true
		}
	}
	if !found {
		t.Error("Center cell should be filled")
	}

	tiny := ellipseCells(cx+3, cy+3, 1, 1)
	if len(tiny) != 1 || tiny[0] != [2]int{10, 10} {
		t.Errorf("Tiny ellipse should cover its center cell, got %v", tiny)
	}
	if got := ellipseCells(cx, cy, 0, 10); len(got) != 0 {
		t.Errorf("Degenerate ellipse should be empty, got %v", got)
	}
}

func TestConfettiGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{0, '▪'},
		{90, '◆'},
		{540, '▫'},
		{-90, '◇'},
	}
	for _, tt := range tests {
		if got := confettiGlyph(tt.rotation); got != tt.want {
			t.Errorf("confettiGlyph(%v) = %q, want %q", tt.rotation, got, tt.want)
		}
	}
}
