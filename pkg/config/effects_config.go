package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/balloons/internal/keyframe"
	"github.com/decker502/balloons/pkg/embedded"
	"github.com/decker502/balloons/pkg/utils"
)

// DefaultConfigPath 是内置效果配置在嵌入资源中的路径
const DefaultConfigPath = "assets/config/effects.yaml"

// EffectsConfig 效果配置根结构
type EffectsConfig struct {
	Window     WindowConfig                 `yaml:"window"`
	Palette    []string                     `yaml:"palette"`    // 所有实体共用的调色板
	Viewport   ViewportConfig               `yaml:"viewport"`   // 视口分档
	Balloon    BalloonConfig                `yaml:"balloon"`    // 气球参数
	Sparkle    SparkleConfig                `yaml:"sparkle"`    // 指针闪光参数
	Confetti   ConfettiConfig               `yaml:"confetti"`   // 彩纸爆发参数
	Anchor     AnchorConfig                 `yaml:"anchor"`     // 锚点文字
	Animations map[string]map[string]string `yaml:"animations"` // 动画名 -> 属性 -> 轨道

	// 解析后的数据，由 validate 填充
	colors []color.RGBA
}

// WindowConfig 窗口参数
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// Range 浮点闭区间
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains 检查 v 是否落在 [Min, Max] 内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// DurationRange 时长区间 [Min, Max)
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// BurstConfig 一次触发产生的多次错开调用
type BurstConfig struct {
	Count   int           `yaml:"count"`
	Stagger time.Duration `yaml:"stagger"`
}

// BalloonConfig 气球生成参数
type BalloonConfig struct {
	Band                Range         `yaml:"band"`                // 中/宽档的水平位置区间（百分比）
	NarrowBands         []Range       `yaml:"narrowBands"`         // 窄档的两侧区间（百分比）
	RiseDuration        DurationRange `yaml:"riseDuration"`        // 上升时长
	SwayPeriod          DurationRange `yaml:"swayPeriod"`          // 摇摆周期
	MaxRotation         float64       `yaml:"maxRotation"`         // 静态旋转上限（度）
	Width               float64       `yaml:"width"`               // 气球宽度（像素）
	Height              float64       `yaml:"height"`              // 气球高度（像素）
	StringLength        float64       `yaml:"stringLength"`        // 气球绳长度（像素）
	InitialBurstDivisor int           `yaml:"initialBurstDivisor"` // 初始批次间隔 = 生成间隔 / divisor
	ClickBurst          BurstConfig   `yaml:"clickBurst"`          // 点击/触摸触发的连发
	RiseAnimation       string        `yaml:"riseAnimation"`
	SwayAnimation       string        `yaml:"swayAnimation"`
}

// SparkleConfig 指针闪光参数
type SparkleConfig struct {
	Probability float64       `yaml:"probability"` // 每次指针移动事件的生成概率
	Jitter      float64       `yaml:"jitter"`      // 每个轴上的最大偏移（像素）
	Lifetime    time.Duration `yaml:"lifetime"`
	Size        float64       `yaml:"size"`
	Opacity     float64       `yaml:"opacity"`
	Animation   string        `yaml:"animation"`
}

// ConfettiConfig 彩纸爆发参数
type ConfettiConfig struct {
	Count     int           `yaml:"count"`
	Distance  Range         `yaml:"distance"` // 飞行距离（像素）
	Lifetime  time.Duration `yaml:"lifetime"`
	Size      float64       `yaml:"size"`
	Animation string        `yaml:"animation"`
}

// AnchorConfig 锚点文字，Text 为空表示没有锚点
type AnchorConfig struct {
	Text     string  `yaml:"text"`
	FontSize float64 `yaml:"fontSize"`
	CenterY  float64 `yaml:"centerY"` // 中心点纵向位置，视口高度的比例
}

// LoadDefaultEffectsConfig 从嵌入资源加载内置配置
func LoadDefaultEffectsConfig() (*EffectsConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read default effects config: %w", err)
	}
	return ParseEffectsConfig(data, nil)
}

// LoadEffectsConfig 加载配置文件
//
// path 为空时只使用内置配置；否则先加载内置配置，再用文件内容覆盖
// （文件里没有出现的字段保留内置值）。
func LoadEffectsConfig(path string) (*EffectsConfig, error) {
	base, err := LoadDefaultEffectsConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects config file: %w", err)
	}
	return ParseEffectsConfig(data, base)
}

// ParseEffectsConfig 解析 YAML 并验证
// base 非 nil 时在其副本上覆盖解析，base 本身不会被修改
func ParseEffectsConfig(data []byte, base *EffectsConfig) (*EffectsConfig, error) {
	var config EffectsConfig
	if base != nil {
		config = base.clone()
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse effects config YAML: %w", err)
	}

	if err := validateEffectsConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid effects config: %w", err)
	}

	return &config, nil
}

// clone 深拷贝会被 YAML 覆盖就地修改的字段
func (c *EffectsConfig) clone() EffectsConfig {
	out := *c
	out.Palette = append([]string(nil), c.Palette...)
	out.Viewport.Tiers = append([]TierConfig(nil), c.Viewport.Tiers...)
	out.Balloon.NarrowBands = append([]Range(nil), c.Balloon.NarrowBands...)
	out.colors = nil
	if c.Animations != nil {
		out.Animations = make(map[string]map[string]string, len(c.Animations))
		for name, props := range c.Animations {
			cp := make(map[string]string, len(props))
			for k, v := range props {
				cp[k] = v
			}
			out.Animations[name] = cp
		}
	}
	return out
}

// Colors 返回解析后的调色板
func (c *EffectsConfig) Colors() []color.RGBA {
	return c.colors
}

// BackgroundColor 返回解析后的背景色，未配置时为白色
func (c *EffectsConfig) BackgroundColor() color.RGBA {
	if c.Window.Background == "" {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	bg, err := utils.ParseColor(c.Window.Background)
	if err != nil {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return bg
}

// BuildAnimations 把 animations 段解析成动画注册表
func (c *EffectsConfig) BuildAnimations() (*keyframe.Registry, error) {
	registry := keyframe.NewRegistry()
	for name, props := range c.Animations {
		anim, err := keyframe.ParseAnimation(name, props)
		if err != nil {
			return nil, err
		}
		registry.Register(anim)
	}
	return registry, nil
}

// validateEffectsConfig 验证配置的有效性
func validateEffectsConfig(config *EffectsConfig) error {
	// 验证调色板
	if len(config.Palette) == 0 {
		return fmt.Errorf("palette cannot be empty")
	}
	colors, err := utils.ParsePalette(config.Palette)
	if err != nil {
		return err
	}
	config.colors = colors

	if config.Window.Background != "" {
		if _, err := utils.ParseColor(config.Window.Background); err != nil {
			return fmt.Errorf("window.background: %w", err)
		}
	}

	if err := validateTiers(config.Viewport.Tiers); err != nil {
		return err
	}

	// 验证气球参数
	b := config.Balloon
	if err := validatePercentRange("balloon.band", b.Band); err != nil {
		return err
	}
	if len(b.NarrowBands) == 0 {
		return fmt.Errorf("balloon.narrowBands cannot be empty")
	}
	for i, band := range b.NarrowBands {
		if err := validatePercentRange(fmt.Sprintf("balloon.narrowBands[%d]", i), band); err != nil {
			return err
		}
	}
	if err := validateDurationRange("balloon.riseDuration", b.RiseDuration); err != nil {
		return err
	}
	if err := validateDurationRange("balloon.swayPeriod", b.SwayPeriod); err != nil {
		return err
	}
	if b.MaxRotation < 0 {
		return fmt.Errorf("balloon.maxRotation must be >= 0, got %v", b.MaxRotation)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("balloon.width and balloon.height must be > 0")
	}
	if b.InitialBurstDivisor < 1 {
		return fmt.Errorf("balloon.initialBurstDivisor must be >= 1, got %d", b.InitialBurstDivisor)
	}
	if b.ClickBurst.Count < 0 {
		return fmt.Errorf("balloon.clickBurst.count must be >= 0, got %d", b.ClickBurst.Count)
	}
	if b.ClickBurst.Stagger < 0 {
		return fmt.Errorf("balloon.clickBurst.stagger must be >= 0, got %v", b.ClickBurst.Stagger)
	}

	// 验证闪光参数
	s := config.Sparkle
	if s.Probability < 0 || s.Probability > 1 {
		return fmt.Errorf("sparkle.probability must be between 0 and 1, got %v", s.Probability)
	}
	if s.Jitter < 0 {
		return fmt.Errorf("sparkle.jitter must be >= 0, got %v", s.Jitter)
	}
	if s.Lifetime <= 0 {
		return fmt.Errorf("sparkle.lifetime must be > 0, got %v", s.Lifetime)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("sparkle.opacity must be between 0 and 1, got %v", s.Opacity)
	}

	// 验证彩纸参数
	cf := config.Confetti
	if cf.Count < 1 {
		return fmt.Errorf("confetti.count must be >= 1, got %d", cf.Count)
	}
	if cf.Distance.Min < 0 || cf.Distance.Min > cf.Distance.Max {
		return fmt.Errorf("confetti.distance must satisfy 0 <= min <= max, got [%v, %v]", cf.Distance.Min, cf.Distance.Max)
	}
	if cf.Lifetime <= 0 {
		return fmt.Errorf("confetti.lifetime must be > 0, got %v", cf.Lifetime)
	}

	if config.Anchor.Text != "" && config.Anchor.FontSize <= 0 {
		return fmt.Errorf("anchor.fontSize must be > 0 when anchor.text is set")
	}

	// 动画轨道在这里解析一次，尽早暴露语法错误
	if _, err := config.BuildAnimations(); err != nil {
		return fmt.Errorf("animations: %w", err)
	}

	return nil
}

func validatePercentRange(field string, r Range) error {
	if r.Min < 0 || r.Max > 100 || r.Min > r.Max {
		return fmt.Errorf("%s must satisfy 0 <= min <= max <= 100, got [%v, %v]", field, r.Min, r.Max)
	}
	return nil
}

func validateDurationRange(field string, r DurationRange) error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("%s must satisfy 0 < min <= max, got [%v, %v]", field, r.Min, r.Max)
	}
	return nil
}
