package entities

import (
	"unicode/utf8"

	"github.com/decker502/balloons/pkg/components"
	"github.com/decker502/balloons/pkg/ecs"
)

// 锚点文字包围盒估算系数（平均字宽 / 行高 相对字号的比例）
const (
	anchorGlyphWidthRatio = 0.55
	anchorLineHeightRatio = 1.2
)

// NewAnchorEntity 创建锚点文字实体
// 包围盒按字号估算；渲染适配器能精确测量时可以调用 SetAnchorBounds 修正
func NewAnchorEntity(manager *ecs.EntityManager, text string, fontSize, centerX, centerY float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.AnchorComponent{
		Text:     text,
		FontSize: fontSize,
		CenterX:  centerX,
		CenterY:  centerY,
		Width:    float64(utf8.RuneCountInString(text)) * fontSize * anchorGlyphWidthRatio,
		Height:   fontSize * anchorLineHeightRatio,
	})

	return id
}

// FindAnchor 查找锚点实体，不存在时返回 false
func FindAnchor(manager *ecs.EntityManager) (ecs.EntityID, *components.AnchorComponent, bool) {
	ids := ecs.GetEntitiesWith1[*components.AnchorComponent](manager)
	if len(ids) == 0 {
		return 0, nil, false
	}
	anchor, ok := ecs.GetComponent[*components.AnchorComponent](manager, ids[0])
	if !ok {
		return 0, nil, false
	}
	return ids[0], anchor, true
}

// SetAnchorBounds 用测量得到的尺寸更新锚点包围盒
func SetAnchorBounds(manager *ecs.EntityManager, width, height float64) {
	if _, anchor, ok := FindAnchor(manager); ok {
		anchor.Width = width
		anchor.Height = height
	}
}
