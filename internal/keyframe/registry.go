package keyframe

import (
	"fmt"
	"sort"
)

// Animation 是一组命名的属性轨道
type Animation struct {
	Name   string
	Tracks map[string]Track
}

// ParseAnimation 从 属性名 → 轨道字符串 的映射构建动画
func ParseAnimation(name string, props map[string]string) (*Animation, error) {
	if name == "" {
		return nil, fmt.Errorf("animation name cannot be empty")
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("animation %s has no tracks", name)
	}

	anim := &Animation{Name: name, Tracks: make(map[string]Track, len(props))}
	for prop, spec := range props {
		track, err := ParseTrack(spec)
		if err != nil {
			return nil, fmt.Errorf("animation %s, track %s: %w", name, prop, err)
		}
		anim.Tracks[prop] = track
	}
	return anim, nil
}

// MustParseAnimation 与 ParseAnimation 相同，解析失败时 panic
// 仅用于代码内置的动画定义
func MustParseAnimation(name string, props map[string]string) *Animation {
	anim, err := ParseAnimation(name, props)
	if err != nil {
		panic(err)
	}
	return anim
}

// Value 返回属性 prop 在时间 t 的值，动画没有该轨道时返回 fallback
func (a *Animation) Value(prop string, t, fallback float64) float64 {
	if a == nil {
		return fallback
	}
	track, ok := a.Tracks[prop]
	if !ok {
		return fallback
	}
	return track.At(t)
}

// Registry 按名称保存动画定义
//
// 样式配置在启动时注册动画；效果代码只引用名称，
// 并在必要时注入自己依赖的内置动画。
type Registry struct {
	anims map[string]*Animation
}

// NewRegistry 创建空的动画注册表
func NewRegistry() *Registry {
	return &Registry{anims: make(map[string]*Animation)}
}

// Register 注册动画，同名动画会被替换
func (r *Registry) Register(anim *Animation) {
	if anim == nil {
		return
	}
	r.anims[anim.Name] = anim
}

// Inject 仅在同名动画不存在时注册，返回是否注册成功
func (r *Registry) Inject(anim *Animation) bool {
	if anim == nil {
		return false
	}
	if _, exists := r.anims[anim.Name]; exists {
		return false
	}
	r.anims[anim.Name] = anim
	return true
}

// Get 按名称查找动画
func (r *Registry) Get(name string) (*Animation, bool) {
	anim, ok := r.anims[name]
	return anim, ok
}

// Names 返回所有已注册的动画名称（已排序）
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.anims))
	for name := range r.anims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
