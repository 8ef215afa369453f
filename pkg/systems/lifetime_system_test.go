package systems

import (
	"testing"
	"time"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

func addLifetimeEntity(em *ecs.EntityManager, spawnedAt, lifetime time.Duration) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{SpawnedAt: spawnedAt, Lifetime: lifetime})
	return id
}

// TestLifetimeTrackRemovesAtExactDeadline 实体恰好在 SpawnedAt+Lifetime 时移除
func TestLifetimeTrackRemovesAtExactDeadline(t *testing.T) {
	tests := []struct {
		name     string
		lifetime time.Duration
	}{
		{"闪光", 900 * time.Millisecond},
		{"彩纸", 1800 * time.Millisecond},
		{"气球", 11*time.Second + 37*time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, 1)
			id := addLifetimeEntity(w.em, 0, tt.lifetime)
			if !w.lifetime.Track(id) {
				t.Fatal("Track should accept an entity with a LifetimeComponent")
			}

			w.sched.Advance(tt.lifetime - time.Nanosecond)
			if !w.em.Exists(id) {
				t.Fatalf("Entity removed before its lifetime elapsed")
			}

			w.sched.Advance(time.Nanosecond)
			if w.em.Exists(id) {
				t.Fatalf("Entity should be removed at exactly %v", tt.lifetime)
			}
			if w.lifetime.Removed() != 1 {
				t.Errorf("Removed() = %d, want 1", w.lifetime.Removed())
			}
		})
	}
}

// TestLifetimeTrackUsesSpawnTime 移除时刻以创建时间为基准，而不是登记时间
func TestLifetimeTrackUsesSpawnTime(t *testing.T) {
	w := newTestWorld(t, 1)
	w.sched.Advance(500 * time.Millisecond)

	id := addLifetimeEntity(w.em, 200*time.Millisecond, time.Second)
	w.lifetime.Track(id)

	due, ok := w.sched.DueIn(RemovalKey(id))
	if !ok || due != 700*time.Millisecond {
		t.Errorf("DueIn = (%v, %v), want (700ms, true)", due, ok)
	}
}

func TestLifetimeTrackWithoutComponent(t *testing.T) {
	w := newTestWorld(t, 1)
	id := w.em.CreateEntity()
	if w.lifetime.Track(id) {
		t.Error("Track should reject an entity without a LifetimeComponent")
	}
}

// TestLifetimeExpireCancelsTask 提前移除时取消待执行的任务
func TestLifetimeExpireCancelsTask(t *testing.T) {
	w := newTestWorld(t, 1)
	id := addLifetimeEntity(w.em, 0, time.Second)
	w.lifetime.Track(id)

	w.lifetime.Expire(id)
	if w.em.Exists(id) {
		t.Fatal("Expire should remove the entity immediately")
	}
	if w.sched.Scheduled(RemovalKey(id)) {
		t.Error("Expire should cancel the pending removal")
	}

	// 重复移除不计数
	w.lifetime.Expire(id)
	if w.lifetime.Removed() != 1 {
		t.Errorf("Removed() = %d, want 1", w.lifetime.Removed())
	}
}

// TestLifetimeUpdateSweepsUntracked 未登记的过期实体由 Update 清理
func TestLifetimeUpdateSweepsUntracked(t *testing.T) {
	w := newTestWorld(t, 1)
	expired := addLifetimeEntity(w.em, 0, 100*time.Millisecond)
	alive := addLifetimeEntity(w.em, 0, 10*time.Second)

	w.sched.Advance(time.Second)
	w.lifetime.Update()

	if w.em.Exists(expired) {
		t.Error("Expired untracked entity should be swept")
	}
	if !w.em.Exists(alive) {
		t.Error("Live entity should survive the sweep")
	}
}
