package components

import "time"

// LifetimeComponent 记录实体的生命周期
// 实体在 SpawnedAt+Lifetime 时刻由调度器移除，动画进度也以此为基准
type LifetimeComponent struct {
	SpawnedAt time.Duration // 创建时的调度器时间
	Lifetime  time.Duration // 存活时长（等于动画时长）
}
