package systems

import (
	"fmt"
	"log"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
	"github.com/decker502/balloons/pkg/scheduler"
)

// LifetimeSystem 管理实体的生命周期
//
// 每个实体在创建时登记一个以实体ID为键的移除任务，到期后立即从注册表删除，
// 所以容量检查看到的永远是当前存活的实体。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *scheduler.Scheduler
	removed       int // 累计移除数量，用于日志
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, sched *scheduler.Scheduler) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		scheduler:     sched,
	}
}

// RemovalKey 返回实体移除任务的调度键
func RemovalKey(id ecs.EntityID) scheduler.Key {
	return scheduler.Key(fmt.Sprintf("lifetime/%d", id))
}

// Track 为实体登记移除任务，到期时刻为 SpawnedAt+Lifetime
// 实体没有 LifetimeComponent 时返回 false
func (s *LifetimeSystem) Track(id ecs.EntityID) bool {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
	if !ok {
		return false
	}

	delay := lifetime.SpawnedAt + lifetime.Lifetime - s.scheduler.Now()
	s.scheduler.Schedule(RemovalKey(id), delay, func() {
		s.Expire(id)
	})
	return true
}

// Expire 立即移除实体，并取消尚未执行的移除任务
func (s *LifetimeSystem) Expire(id ecs.EntityID) {
	s.scheduler.Cancel(RemovalKey(id))
	if !s.entityManager.Exists(id) {
		return
	}
	s.entityManager.DestroyEntity(id)
	s.removed += s.entityManager.RemoveMarkedEntities()
}

// Removed 返回累计移除的实体数量
func (s *LifetimeSystem) Removed() int {
	return s.removed
}

// Update 清理已过期但没有登记移除任务的实体
//
// 正常路径下所有实体都经过 Track，这里只兜底直接用工厂创建的实体。
func (s *LifetimeSystem) Update() {
	now := s.scheduler.Now()
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	expired := 0
	for _, id := range entities {
		if s.scheduler.Scheduled(RemovalKey(id)) {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if now >= lifetime.SpawnedAt+lifetime.Lifetime {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}

	if expired > 0 {
		s.removed += s.entityManager.RemoveMarkedEntities()
		log.Printf("[LifetimeSystem] Swept %d untracked expired entities", expired)
	}
}
