package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/entities"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestProgress(t *testing.T) {
	tests := []struct {
		spawned, lifetime, now time.Duration
		want                   float64
	}{
		{0, time.Second, 0, 0},
		{0, time.Second, 500 * time.Millisecond, 0.5},
		{time.Second, 2 * time.Second, 2 * time.Second, 0.5},
		{0, time.Second, 3 * time.Second, 1},
		{0, 0, 0, 1},
	}

	for _, tt := range tests {
		got := Progress(&components.LifetimeComponent{SpawnedAt: tt.spawned, Lifetime: tt.lifetime}, tt.now)
		if !approx(got, tt.want) {
			t.Errorf("Progress(%v, %v, %v) = %v, want %v", tt.spawned, tt.lifetime, tt.now, got, tt.want)
		}
	}
}

// TestAnimateBalloon 气球从视口底部下方升到顶部上方，叠加摇摆
func TestAnimateBalloon(t *testing.T) {
	w := newTestWorld(t, 1)
	vp := w.profile(1000)
	vp.Height = 800
	system := NewAnimationSystem(w.em, w.sched, w.animations)

	id := entities.NewBalloonEntity(w.em, entities.BalloonSpec{
		LeftPercent:  50,
		RiseDuration: 10 * time.Second,
		SwayPeriod:   4 * time.Second,
		Rotation:     2,
		RiseAnim:     "balloonFly",
		SwayAnim:     "sway",
	}, 0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	visual, _ := ecs.GetComponent[*components.VisualComponent](w.em, id)

	system.Update(vp)
	// balloonFly y: 1.02 → -0.4；sway x 从 -10 开始，rotate 从 -3 开始
	if !approx(pos.Y, 1.02*800) {
		t.Errorf("Start Y = %v, want %v", pos.Y, 1.02*800)
	}
	if !approx(pos.X, 500-10) {
		t.Errorf("Start X = %v, want 490", pos.X)
	}
	if !approx(visual.Rotation, 2-3) {
		t.Errorf("Start rotation = %v, want -1", visual.Rotation)
	}

	// 半个摇摆周期：sway 位于 +10
	w.sched.Advance(2 * time.Second)
	system.Update(vp)
	wantY := (1.02 + (-0.4-1.02)*0.2) * 800
	if !approx(pos.Y, wantY) {
		t.Errorf("Y at 2s = %v, want %v", pos.Y, wantY)
	}
	if !approx(pos.X, 510) {
		t.Errorf("X at half sway = %v, want 510", pos.X)
	}

	// 摇摆循环：4 秒后回到起点
	w.sched.Advance(2 * time.Second)
	system.Update(vp)
	if !approx(pos.X, 490) {
		t.Errorf("X after one sway period = %v, want 490", pos.X)
	}
}

// TestAnimateConfetti 彩纸在结束时到达完整位移并完全透明
func TestAnimateConfetti(t *testing.T) {
	w := newTestWorld(t, 1)
	system := NewAnimationSystem(w.em, w.sched, w.animations)

	id := entities.NewConfettiEntity(w.em, entities.ConfettiSpec{
		OriginX: 100, OriginY: 100, Angle: 0, Distance: 300,
		Size: 10, Lifetime: 1800 * time.Millisecond, Animation: "confettiBurst",
	}, 0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	visual, _ := ecs.GetComponent[*components.VisualComponent](w.em, id)

	system.Update(w.profile(1024))
	if !approx(pos.X, 100) || !approx(visual.Opacity, 1) {
		t.Errorf("Start: X=%v opacity=%v", pos.X, visual.Opacity)
	}

	w.sched.Advance(1800 * time.Millisecond)
	system.Update(w.profile(1024))
	if !approx(pos.X, 400) || !approx(pos.Y, 100) {
		t.Errorf("End position = (%v, %v), want (400, 100)", pos.X, pos.Y)
	}
	if !approx(visual.Opacity, 0) {
		t.Errorf("End opacity = %v, want 0", visual.Opacity)
	}
	if !approx(visual.Rotation, 540) || !approx(visual.Scale, 0.6) {
		t.Errorf("End rotation=%v scale=%v", visual.Rotation, visual.Scale)
	}
}

// TestAnimateSparkle 闪光淡出并向上漂移
func TestAnimateSparkle(t *testing.T) {
	w := newTestWorld(t, 1)
	NewSparkleSystem(w.em, w.sched, w.lifetime, w.animations, w.cfg, w.rng)
	system := NewAnimationSystem(w.em, w.sched, w.animations)

	id := entities.NewSparkleEntity(w.em, entities.SparkleSpec{
		X: 50, Y: 60, Size: 8, Opacity: 0.9,
		Lifetime: 900 * time.Millisecond, Animation: "fadeOut",
	}, 0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	visual, _ := ecs.GetComponent[*components.VisualComponent](w.em, id)

	system.Update(w.profile(1024))
	if !approx(visual.Opacity, 0.9) || !approx(pos.Y, 60) {
		t.Errorf("Start: opacity=%v Y=%v", visual.Opacity, pos.Y)
	}

	w.sched.Advance(900 * time.Millisecond)
	system.Update(w.profile(1024))
	if !approx(visual.Opacity, 0) || !approx(pos.Y, 40) || !approx(visual.Scale, 0.5) {
		t.Errorf("End: opacity=%v Y=%v scale=%v", visual.Opacity, pos.Y, visual.Scale)
	}
}
