package config

import (
	"fmt"
	"time"
)

// Tier 视口宽度分档
type Tier string

const (
	TierNarrow Tier = "narrow"
	TierMedium Tier = "medium"
	TierWide   Tier = "wide"
)

// TierConfig 单个分档的配置
type TierConfig struct {
	Name          Tier          `yaml:"name"`
	MaxWidth      int           `yaml:"maxWidth"` // 宽度上限（含），0 表示无上限
	Capacity      int           `yaml:"capacity"` // 同时存在的气球上限
	SpawnInterval time.Duration `yaml:"spawnInterval"`
}

// ViewportConfig 视口分档表
type ViewportConfig struct {
	Tiers []TierConfig `yaml:"tiers"`
}

// ViewportProfile 是由视口宽度推导出的生成参数
//
// 每次 resize 都重新计算并整体替换，生成系统只接收值拷贝。
type ViewportProfile struct {
	Tier          Tier
	Width         int
	Height        int
	Capacity      int
	SpawnInterval time.Duration
}

// Narrow 是否处于窄档（窄档气球避开屏幕中央）
func (p ViewportProfile) Narrow() bool {
	return p.Tier == TierNarrow
}

// InitialBurstCount 加载时的初始气球数量
// 容量大于 8 生成 4 个，大于 5 生成 3 个，否则 2 个
func (p ViewportProfile) InitialBurstCount() int {
	switch {
	case p.Capacity > 8:
		return 4
	case p.Capacity > 5:
		return 3
	default:
		return 2
	}
}

// ResolveViewport 根据视口宽度选择分档
//
// 分档按 MaxWidth 升序匹配，宽度 <= MaxWidth 即命中；没有滞后，
// 在阈值附近反复调整窗口会立即来回切换分档。
func (c ViewportConfig) ResolveViewport(width, height int) ViewportProfile {
	for _, tier := range c.Tiers {
		if tier.MaxWidth == 0 || width <= tier.MaxWidth {
			return ViewportProfile{
				Tier:          tier.Name,
				Width:         width,
				Height:        height,
				Capacity:      tier.Capacity,
				SpawnInterval: tier.SpawnInterval,
			}
		}
	}

	// validateTiers 保证最后一档无上限，这里只在未验证的配置上触发
	last := c.Tiers[len(c.Tiers)-1]
	return ViewportProfile{
		Tier:          last.Name,
		Width:         width,
		Height:        height,
		Capacity:      last.Capacity,
		SpawnInterval: last.SpawnInterval,
	}
}

// validateTiers 验证分档表：非空、上限严格递增、只有最后一档无上限
func validateTiers(tiers []TierConfig) error {
	if len(tiers) == 0 {
		return fmt.Errorf("viewport.tiers cannot be empty")
	}

	prev := 0
	for i, tier := range tiers {
		if tier.Name == "" {
			return fmt.Errorf("viewport.tiers[%d].name cannot be empty", i)
		}
		if tier.Capacity < 1 {
			return fmt.Errorf("viewport.tiers[%d].capacity must be >= 1, got %d", i, tier.Capacity)
		}
		if tier.SpawnInterval <= 0 {
			return fmt.Errorf("viewport.tiers[%d].spawnInterval must be > 0, got %v", i, tier.SpawnInterval)
		}

		last := i == len(tiers)-1
		if tier.MaxWidth == 0 {
			if !last {
				return fmt.Errorf("viewport.tiers[%d]: only the last tier may have maxWidth 0", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("viewport.tiers[%d]: last tier must have maxWidth 0 (unbounded)", i)
		}
		if tier.MaxWidth <= prev {
			return fmt.Errorf("viewport.tiers[%d].maxWidth must be greater than %d, got %d", i, prev, tier.MaxWidth)
		}
		prev = tier.MaxWidth
	}

	return nil
}
