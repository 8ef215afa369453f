package utils

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ParseColor 解析 CSS 颜色字符串（"#FF4444"、"tomato"、"rgb(255,68,68)" 等）
func ParseColor(s string) (color.RGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// ParsePalette 解析调色板，任何一项无效都返回错误
func ParsePalette(entries []string) ([]color.RGBA, error) {
	palette := make([]color.RGBA, 0, len(entries))
	for i, s := range entries {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// Shade 在 Lab 空间中把颜色向黑色混合 amount（0-1），保留 alpha
// 用于气球边缘的暗色描边
func Shade(c color.RGBA, amount float64) color.RGBA {
	return blendLab(c, colorful.Color{R: 0, G: 0, B: 0}, amount)
}

// Tint 在 Lab 空间中把颜色向白色混合 amount（0-1），保留 alpha
// 用于气球高光
func Tint(c color.RGBA, amount float64) color.RGBA {
	return blendLab(c, colorful.Color{R: 1, G: 1, B: 1}, amount)
}

// Blend 在 Lab 空间中把 c 向 target 混合 amount（0-1），保留 c 的 alpha
// 终端没有透明度，用它把半透明实体混进背景色
func Blend(c, target color.RGBA, amount float64) color.RGBA {
	return blendLab(c, colorful.Color{
		R: float64(target.R) / 255,
		G: float64(target.G) / 255,
		B: float64(target.B) / 255,
	}, amount)
}

func blendLab(c color.RGBA, target colorful.Color, amount float64) color.RGBA {
	base := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	mixed := base.BlendLab(target, Clamp01(amount)).Clamped()
	r, g, b := mixed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}
