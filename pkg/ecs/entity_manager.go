// Package ecs 提供实体注册表
//
// EntityManager 是所有活动视觉实体的唯一容器：渲染适配器每帧读取它，
// 生成/过期逻辑只通过它增删实体。实体按创建顺序保存，查询结果也按创建顺序返回，
// 这样渲染顺序与追加顺序一致（后创建的实体绘制在上层）。
package ecs

import "reflect"

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 按创建顺序排列的存活实体
	order []EntityID
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		order:             make([]EntityID, 0, 64),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
// ID 单调递增，永不复用
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	em.order = append(em.order, id)
	return id
}

// Exists 检查实体是否仍在注册表中
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回当前存活实体数量（包括已标记但尚未清理的实体）
func (em *EntityManager) Count() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回实际被删除的实体数量（重复标记或已删除的实体不计入）
func (em *EntityManager) RemoveMarkedEntities() int {
	if len(em.entitiesToDestroy) == 0 {
		return 0
	}

	removed := 0
	for _, id := range em.entitiesToDestroy {
		if _, ok := em.components[id]; ok {
			delete(em.components, id)
			removed++
		}
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片

	// 压缩顺序表，保持剩余实体的相对顺序
	alive := em.order[:0]
	for _, id := range em.order {
		if _, ok := em.components[id]; ok {
			alive = append(alive, id)
		}
	}
	em.order = alive

	return removed
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按创建顺序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for _, id := range em.order {
		compMap, ok := em.components[id]
		if !ok {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	return result
}
