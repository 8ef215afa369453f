package entities

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

var testRed = color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF}

func TestNewBalloonEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id := NewBalloonEntity(em, BalloonSpec{
		LeftPercent:  42,
		Color:        testRed,
		RiseDuration: 9 * time.Second,
		SwayPeriod:   4 * time.Second,
		Rotation:     -3,
		Width:        56,
		Height:       70,
		RiseAnim:     "balloonFly",
		SwayAnim:     "sway",
	}, 2*time.Second)

	if id == 0 {
		t.Fatal("Expected valid entity ID, got 0")
	}

	visual, ok := ecs.GetComponent[*components.VisualComponent](em, id)
	if !ok {
		t.Fatal("Balloon should have a VisualComponent")
	}
	if visual.Kind != components.KindBalloon || visual.Color != testRed || visual.Animation != "balloonFly" {
		t.Errorf("Unexpected visual: %+v", visual)
	}

	balloon, ok := ecs.GetComponent[*components.BalloonComponent](em, id)
	if !ok {
		t.Fatal("Balloon should have a BalloonComponent")
	}
	if balloon.LeftPercent != 42 || balloon.SwayPeriod != 4*time.Second || balloon.Rotation != -3 {
		t.Errorf("Unexpected balloon: %+v", balloon)
	}

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok {
		t.Fatal("Balloon should have a LifetimeComponent")
	}
	if lifetime.SpawnedAt != 2*time.Second || lifetime.Lifetime != 9*time.Second {
		t.Errorf("Lifetime should match rise duration, got %+v", lifetime)
	}

	if !ecs.HasComponent[*components.PositionComponent](em, id) {
		t.Error("Balloon should have a PositionComponent")
	}
}

func TestNewSparkleEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id := NewSparkleEntity(em, SparkleSpec{
		X: 100, Y: 200, Color: testRed, Size: 8, Opacity: 0.9,
		Lifetime: 900 * time.Millisecond, Animation: "fadeOut",
	}, 0)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Sparkle should start at its origin, got (%v, %v)", pos.X, pos.Y)
	}

	visual, _ := ecs.GetComponent[*components.VisualComponent](em, id)
	if visual.Kind != components.KindSparkle || visual.Width != 8 || visual.Opacity != 0.9 {
		t.Errorf("Unexpected visual: %+v", visual)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.Lifetime != 900*time.Millisecond {
		t.Errorf("Sparkle lifetime = %v, want 900ms", lifetime.Lifetime)
	}
}

func TestNewConfettiEntityTranslation(t *testing.T) {
	em := ecs.NewEntityManager()

	tests := []struct {
		angle    float64
		distance float64
		wantX    float64
		wantY    float64
	}{
		{0, 200, 200, 0},
		{math.Pi / 2, 300, 0, 300},
		{math.Pi, 250, -250, 0},
		{3 * math.Pi / 2, 350, 0, -350},
	}

	for _, tt := range tests {
		id := NewConfettiEntity(em, ConfettiSpec{
			OriginX: 400, OriginY: 300, Angle: tt.angle, Distance: tt.distance,
			Color: testRed, Size: 10, Lifetime: 1800 * time.Millisecond,
		}, 0)

		c, ok := ecs.GetComponent[*components.ConfettiComponent](em, id)
		if !ok {
			t.Fatal("Confetti should have a ConfettiComponent")
		}
		if math.Abs(c.TranslateX-tt.wantX) > 1e-9 || math.Abs(c.TranslateY-tt.wantY) > 1e-9 {
			t.Errorf("angle %v: translate = (%v, %v), want (%v, %v)", tt.angle, c.TranslateX, c.TranslateY, tt.wantX, tt.wantY)
		}
	}
}

func TestAnchorLookup(t *testing.T) {
	em := ecs.NewEntityManager()

	if _, _, ok := FindAnchor(em); ok {
		t.Fatal("Empty registry should have no anchor")
	}

	id := NewAnchorEntity(em, "Happy Birthday!", 40, 512, 300)
	gotID, anchor, ok := FindAnchor(em)
	if !ok || gotID != id {
		t.Fatalf("FindAnchor = (%d, %v), want (%d, true)", gotID, ok, id)
	}
	if anchor.Width != 15*40*anchorGlyphWidthRatio {
		t.Errorf("Estimated width = %v", anchor.Width)
	}

	SetAnchorBounds(em, 321, 48)
	if anchor.Width != 321 || anchor.Height != 48 {
		t.Errorf("SetAnchorBounds did not update bounds: %+v", anchor)
	}
}
