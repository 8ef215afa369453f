// Package keyframe 提供关键帧动画曲线的解析与求值
//
// 动画由若干属性轨道（Track）组成，每条轨道是一组 "时间,值" 关键帧，
// 时间归一化到 [0, 1]。例如气球上升动画的纵向轨道：
//
//	y: "0,1.05 1,-0.35 linear"
//
// 表示从视口高度的 105% 处线性移动到 -35% 处。轨道可以带一个缓动关键字
// （linear / ease-in / ease-out / ease-in-out），作用于每一段关键帧之间。
package keyframe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/balloons/pkg/utils"
)

// 常用的属性名称
const (
	PropX        = "x"        // 水平偏移（像素）
	PropY        = "y"        // 垂直位置或偏移，含义由动画定义
	PropOpacity  = "opacity"  // 不透明度 0-1
	PropScale    = "scale"    // 缩放倍数
	PropRotate   = "rotate"   // 旋转角度（度）
	PropProgress = "progress" // 沿某个位移向量的进度 0-1
)

// Keyframe 表示动画曲线上的单个关键帧
type Keyframe struct {
	Time  float64 // 归一化时间 0-1
	Value float64 // 该时刻的值
}

// Track 是单个属性的关键帧轨道
type Track struct {
	Keyframes     []Keyframe
	Interpolation string // 缓动名称，空值表示线性
}

// ParseTrack 解析轨道字符串
//
// 支持的格式：
//   - 固定值: "0.9" → 单关键帧
//   - 关键帧: "0,1 1,0" → 时间,值 对
//   - 带缓动: "0,0 0.5,18 1,0 ease-in-out"
func ParseTrack(s string) (Track, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Track{}, fmt.Errorf("empty track")
	}

	var track Track
	for _, part := range strings.Fields(s) {
		if !strings.Contains(part, ",") {
			if v, err := strconv.ParseFloat(part, 64); err == nil {
				// 固定值只允许单独出现
				if len(track.Keyframes) > 0 {
					return Track{}, fmt.Errorf("bare value %q mixed with keyframes", part)
				}
				track.Keyframes = append(track.Keyframes, Keyframe{Time: 0, Value: v})
				continue
			}
			if track.Interpolation != "" {
				return Track{}, fmt.Errorf("duplicate interpolation %q", part)
			}
			track.Interpolation = part
			continue
		}

		pair := strings.Split(part, ",")
		if len(pair) != 2 {
			return Track{}, fmt.Errorf("malformed keyframe %q", part)
		}
		tm, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return Track{}, fmt.Errorf("keyframe %q: bad time: %w", part, err)
		}
		val, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return Track{}, fmt.Errorf("keyframe %q: bad value: %w", part, err)
		}
		if tm < 0 || tm > 1 {
			return Track{}, fmt.Errorf("keyframe %q: time must be within [0,1]", part)
		}
		track.Keyframes = append(track.Keyframes, Keyframe{Time: tm, Value: val})
	}

	if len(track.Keyframes) == 0 {
		return Track{}, fmt.Errorf("track %q has no keyframes", s)
	}

	sort.SliceStable(track.Keyframes, func(i, j int) bool {
		return track.Keyframes[i].Time < track.Keyframes[j].Time
	})

	return track, nil
}

// At 计算轨道在归一化时间 t 处的值
func (tr Track) At(t float64) float64 {
	return EvaluateKeyframes(tr.Keyframes, t, tr.Interpolation)
}

// EvaluateKeyframes 计算关键帧序列在归一化时间 t (0-1) 处的插值
//
// keyframes 必须按时间排序。t 早于第一帧返回第一帧的值，
// 晚于最后一帧返回最后一帧的值。
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = utils.Clamp01(t)

	if t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	ease := utils.EasingByName(interpolation)
	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			span := k1.Time - k0.Time
			if span <= 0 {
				return k1.Value
			}
			ratio := ease((t - k0.Time) / span)
			return utils.Lerp(k0.Value, k1.Value, ratio)
		}
	}

	return keyframes[len(keyframes)-1].Value
}
