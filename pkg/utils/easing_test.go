package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	for _, in := range []float64{0, 0.25, 0.5, 1} {
		if got := EaseLinear(in); math.Abs(got-in) > 0.001 {
			t.Errorf("EaseLinear(%v) = %v, 期望 %v", in, got, in)
		}
	}
}

// TestEasingEndpoints 所有缓动函数都必须满足 f(0)=0, f(1)=1
func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]EasingFunc{
		"EaseOutCubic":   EaseOutCubic,
		"EaseInCubic":    EaseInCubic,
		"EaseInOutCubic": EaseInOutCubic,
		"EaseOutQuad":    EaseOutQuad,
		"EaseInQuad":     EaseInQuad,
		"EaseInOutSine":  EaseInOutSine,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, 期望 0", name, got)
			}
			if got := fn(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, 期望 1", name, got)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	// 1 - (1-0.5)^3 = 0.875
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 0.001 {
		t.Errorf("EaseOutCubic(0.5) = %v, 期望 0.875", got)
	}

	// 开始快：前半段领先于线性
	for p := 0.1; p < 0.5; p += 0.1 {
		if EaseOutCubic(p) <= EaseLinear(p) {
			t.Errorf("EaseOutCubic(%v) 应该大于线性值", p)
		}
	}
}

// TestEaseInOutSineSymmetry 摇摆曲线关于中点对称
func TestEaseInOutSineSymmetry(t *testing.T) {
	if got := EaseInOutSine(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOutSine(0.5) = %v, 期望 0.5", got)
	}
	for p := 0.05; p < 0.5; p += 0.05 {
		a := EaseInOutSine(p)
		b := 1 - EaseInOutSine(1-p)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("EaseInOutSine 在 %v 处不对称: %v vs %v", p, a, b)
		}
	}
}

// TestEasingByName 测试名称查找
func TestEasingByName(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"linear", 0.5, 0.5},
		{"ease-out", 0.5, 0.75},
		{"EaseOut", 0.5, 0.75},
		{"ease-in", 0.5, 0.25},
		{"ease-in-out", 0.5, 0.5},
		{"FastInOutWeak", 0.5, 0.5},
		{"unknown-curve", 0.3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EasingByName(tt.name)(tt.input)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("EasingByName(%q)(%v) = %v, 期望 %v", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

// TestLerpWithEasing 模拟彩纸从原点飞向 (tx, ty) 的位移
func TestLerpWithEasing(t *testing.T) {
	tx, ty := 300.0, -120.0

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		e := EaseOutCubic(p)
		x := Lerp(0, tx, e)
		y := Lerp(0, ty, e)

		if x < 0 || x > tx {
			t.Errorf("进度 %v 时 X=%v 超出 [0, %v]", p, x, tx)
		}
		if y > 0 || y < ty {
			t.Errorf("进度 %v 时 Y=%v 超出 [%v, 0]", p, y, ty)
		}
	}

	if x := Lerp(0, tx, EaseOutCubic(1)); math.Abs(x-tx) > 0.001 {
		t.Errorf("进度 1 时应到达终点 %v，实际 %v", tx, x)
	}
}

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-0.5: 0, 0: 0, 0.4: 0.4, 1: 1, 2: 1}
	for in, want := range cases {
		if got := Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", in, got, want)
		}
	}
}
