package app

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/config"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
	"github.com/decker502/balloons/pkg/utils"
)

const (
	// dotRadius 白色圆形纹理的半径，椭圆由它缩放得到
	dotRadius = 32

	stringWidth = 2
	// 每段贝塞尔曲线的采样数
	stringSamples = 12

	// anchorMarginRatio 锚点文字两侧至少保留的视口宽度比例
	anchorMarginRatio = 0.08
)

var (
	stringColor = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	anchorColor = color.RGBA{R: 0xC2, G: 0x18, B: 0x5B, A: 0xFF}
)

// point 渲染用的二维点
type point struct {
	X, Y float64
}

// Renderer 把实体注册表画到 Ebiten 屏幕上
type Renderer struct {
	dot    *ebiten.Image // 白色实心圆
	pixel  *ebiten.Image // 1x1 白色像素
	source *text.GoTextFaceSource
	face   *text.GoTextFace

	background   color.RGBA
	stringLength float64

	// 锚点文字折行结果，尺寸或文字变化时重新计算
	anchorLines []string
	lineHeight  float64
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.EffectsConfig) (*Renderer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load anchor font: %w", err)
	}

	dot := ebiten.NewImage(dotRadius*2, dotRadius*2)
	vector.DrawFilledCircle(dot, dotRadius, dotRadius, dotRadius, color.White, true)

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	r := &Renderer{
		dot:    dot,
		pixel:  pixel,
		source: source,
	}
	r.SetConfig(cfg)
	return r, nil
}

// SetConfig 应用配置中的外观参数
func (r *Renderer) SetConfig(cfg *config.EffectsConfig) {
	r.background = cfg.BackgroundColor()
	r.stringLength = cfg.Balloon.StringLength
	r.face = &text.GoTextFace{Source: r.source, Size: cfg.Anchor.FontSize}
	r.lineHeight = cfg.Anchor.FontSize * 1.2
	r.anchorLines = nil
}

// LayoutAnchor 按视口宽度折行锚点文字，并把测量出的包围盒写回实体
func (r *Renderer) LayoutAnchor(em *ecs.EntityManager, viewportWidth int) {
	_, anchor, ok := entities.FindAnchor(em)
	if !ok {
		r.anchorLines = nil
		return
	}

	maxWidth := float64(viewportWidth) * (1 - 2*anchorMarginRatio)
	measure := measureWidth(r.face)
	r.anchorLines = wrapLines(anchor.Text, maxWidth, measure)

	width := 0.0
	for _, line := range r.anchorLines {
		width = math.Max(width, measure(line))
	}
	entities.SetAnchorBounds(em, width, r.lineHeight*float64(len(r.anchorLines)))
}

// Draw 绘制一帧
// 顺序：背景、气球、锚点文字、闪光和彩纸
func (r *Renderer) Draw(screen *ebiten.Image, em *ecs.EntityManager) {
	screen.Fill(r.background)

	ids := ecs.GetEntitiesWith2[*components.VisualComponent, *components.PositionComponent](em)
	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)
		if visual.Kind != components.KindBalloon {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		r.drawBalloon(screen, pos, visual)
	}

	r.drawAnchor(screen, em)

	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		switch visual.Kind {
		case components.KindSparkle:
			size := visual.Width * visual.Scale
			r.drawEllipse(screen, pos.X, pos.Y, size, size, 0, visual.Color, visual.Opacity)
		case components.KindConfetti:
			r.drawRect(screen, pos.X, pos.Y, visual.Width*visual.Scale, visual.Height*visual.Scale,
				visual.Rotation*math.Pi/180, visual.Color, visual.Opacity)
		}
	}
}

// drawBalloon 气球：深色边缘、球体、高光、波浪形的绳子
// pos 是球体左上角，旋转以球体中心为原点
func (r *Renderer) drawBalloon(screen *ebiten.Image, pos *components.PositionComponent, visual *components.VisualComponent) {
	w := visual.Width * visual.Scale
	h := visual.Height * visual.Scale
	cx := pos.X + w/2
	cy := pos.Y + h/2
	rot := visual.Rotation * math.Pi / 180
	alpha := visual.Opacity

	// 绳子画在球体下面
	pts := balloonString(cx, cy, h/2, r.stringLength*visual.Scale, rot)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen, float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y),
			stringWidth, withAlpha(stringColor, alpha), true)
	}

	r.drawEllipse(screen, cx, cy, w*1.06, h*1.04, rot, utils.Shade(visual.Color, 0.3), alpha)
	r.drawEllipse(screen, cx, cy, w, h, rot, visual.Color, alpha)

	gx, gy := rotateAround(cx-w*0.18, cy-h*0.2, cx, cy, rot)
	r.drawEllipse(screen, gx, gy, w*0.28, h*0.22, rot-0.5, utils.Tint(visual.Color, 0.8), alpha*0.6)
}

func (r *Renderer) drawAnchor(screen *ebiten.Image, em *ecs.EntityManager) {
	_, anchor, ok := entities.FindAnchor(em)
	if !ok || len(r.anchorLines) == 0 {
		return
	}

	top := anchor.CenterY - r.lineHeight*float64(len(r.anchorLines))/2
	for i, line := range r.anchorLines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(anchor.CenterX, top+float64(i)*r.lineHeight)
		op.ColorScale.ScaleWithColor(anchorColor)
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, line, r.face, op)
	}
}

// drawEllipse 以 (cx, cy) 为中心绘制旋转椭圆
func (r *Renderer) drawEllipse(dst *ebiten.Image, cx, cy, w, h, rot float64, clr color.RGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-dotRadius, -dotRadius)
	op.GeoM.Scale(w/(2*dotRadius), h/(2*dotRadius))
	op.GeoM.Rotate(rot)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.dot, op)
}

// drawRect 以 (cx, cy) 为中心绘制旋转矩形
func (r *Renderer) drawRect(dst *ebiten.Image, cx, cy, w, h, rot float64, clr color.RGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(rot)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
	dst.DrawImage(r.pixel, op)
}

// stringCurve 绳子的两段三次贝塞尔曲线，单位是绳长的比例
// 横向摆幅为绳长的 4%
var stringCurve = [2][4]point{
	{{0, 0}, {-0.04, 0.27}, {0.04, 0.53}, {0, 0.8}},
	{{0, 0.8}, {-0.04, 0.93}, {0.04, 1}, {0, 1}},
}

// balloonString 计算绳子折线的顶点
// 绳子从球体底部中心 (cx, cy+halfHeight) 垂下，整体绕球体中心旋转 rot 弧度
func balloonString(cx, cy, halfHeight, length, rot float64) []point {
	pts := make([]point, 0, len(stringCurve)*stringSamples+1)
	top := cy + halfHeight

	for si, seg := range stringCurve {
		start := 1
		if si == 0 {
			start = 0
		}
		for i := start; i <= stringSamples; i++ {
			p := cubicBezier(seg, float64(i)/stringSamples)
			x, y := rotateAround(cx+p.X*length, top+p.Y*length, cx, cy, rot)
			pts = append(pts, point{x, y})
		}
	}
	return pts
}

func cubicBezier(seg [4]point, t float64) point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return point{
		X: a*seg[0].X + b*seg[1].X + c*seg[2].X + d*seg[3].X,
		Y: a*seg[0].Y + b*seg[1].Y + c*seg[2].Y + d*seg[3].Y,
	}
}

// rotateAround 把 (x, y) 绕 (ox, oy) 旋转 rot 弧度
func rotateAround(x, y, ox, oy, rot float64) (float64, float64) {
	if rot == 0 {
		return x, y
	}
	sin, cos := math.Sincos(rot)
	dx, dy := x-ox, y-oy
	return ox + dx*cos - dy*sin, oy + dx*sin + dy*cos
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
