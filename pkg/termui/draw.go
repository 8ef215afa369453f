package termui

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/utils"
)

var (
	stringColor = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	anchorColor = color.RGBA{R: 0xC2, G: 0x18, B: 0x5B, A: 0xFF}
)

// confettiGlyphs cycle with the particle rotation.
var confettiGlyphs = []rune{'▪', '◆', '▫', '◇'}

// Draw paints one frame: background, balloons, anchor, then sparkles and
// confetti on top.
func (t *Terminal) Draw() {
	bg := tcellColor(t.background)
	base := tcell.StyleDefault.Background(bg)
	t.screen.SetStyle(base)
	t.screen.Clear()

	em := t.manager.EntityManager()
	ids := ecs.GetEntitiesWith2[*components.VisualComponent, *components.PositionComponent](em)

	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)
		if visual.Kind != components.KindBalloon {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		t.drawBalloon(base, pos, visual)
	}

	t.drawAnchor(base)

	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		switch visual.Kind {
		case components.KindSparkle:
			t.setCell(pos.X, pos.Y, '*', base.Foreground(t.fade(visual.Color, visual.Opacity)))
		case components.KindConfetti:
			t.setCell(pos.X, pos.Y, confettiGlyph(visual.Rotation), base.Foreground(t.fade(visual.Color, visual.Opacity)))
		}
	}

	t.screen.Show()
}

// drawBalloon fills the cells whose centers fall inside the bulb ellipse and
// hangs the string from the bottom center.
func (t *Terminal) drawBalloon(base tcell.Style, pos *components.PositionComponent, visual *components.VisualComponent) {
	w := visual.Width * visual.Scale
	h := visual.Height * visual.Scale
	cx := pos.X + w/2
	cy := pos.Y + h/2
	fill := base.Foreground(t.fade(visual.Color, visual.Opacity))

	for _, cell := range ellipseCells(cx, cy, w/2, h/2) {
		t.setCellAt(cell[0], cell[1], '█', fill)
	}

	col, row := ToCell(cx, cy+h/2)
	length := t.manager.Config().Balloon.StringLength * visual.Scale
	rope := base.Foreground(t.fade(stringColor, visual.Opacity))
	for i := 0; i < int(math.Ceil(length/CellHeight)); i++ {
		glyph := '│'
		if i%2 == 1 {
			glyph = '╎'
		}
		t.setCellAt(col, row+i, glyph, rope)
	}
}

func (t *Terminal) drawAnchor(base tcell.Style) {
	_, anchor, ok := entities.FindAnchor(t.manager.EntityManager())
	if !ok {
		return
	}
	style := base.Foreground(tcellColor(anchorColor)).Bold(true)

	col, row := ToCell(anchor.CenterX, anchor.CenterY)
	start := col - utf8.RuneCountInString(anchor.Text)/2
	for i, r := range []rune(anchor.Text) {
		t.setCellAt(start+i, row, r, style)
	}
}

// ellipseCells lists the cells whose centers lie inside the ellipse. A bulb
// smaller than one cell still gets the cell under its center.
func ellipseCells(cx, cy, rx, ry float64) [][2]int {
	var cells [][2]int
	if rx <= 0 || ry <= 0 {
		return cells
	}

	minCol, minRow := ToCell(cx-rx, cy-ry)
	maxCol, maxRow := ToCell(cx+rx, cy+ry)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y := ToPixels(col, row)
			dx := (x - cx) / rx
			dy := (y - cy) / ry
			if dx*dx+dy*dy <= 1 {
				cells = append(cells, [2]int{col, row})
			}
		}
	}
	if len(cells) == 0 {
		col, row := ToCell(cx, cy)
		cells = append(cells, [2]int{col, row})
	}
	return cells
}

func confettiGlyph(rotation float64) rune {
	step := int(math.Floor(rotation/90)) % len(confettiGlyphs)
	if step < 0 {
		step += len(confettiGlyphs)
	}
	return confettiGlyphs[step]
}

// fade mixes a color into the background; terminals have no alpha.
func (t *Terminal) fade(c color.RGBA, opacity float64) tcell.Color {
	return tcellColor(utils.Blend(c, t.background, 1-utils.Clamp01(opacity)))
}

func (t *Terminal) setCell(x, y float64, r rune, style tcell.Style) {
	col, row := ToCell(x, y)
	t.setCellAt(col, row, r, style)
}

func (t *Terminal) setCellAt(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return
	}
	t.screen.SetContent(col, row, r, nil, style)
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
