package ecs

import "reflect"

// 泛型查询辅助函数
//
// 反射版本需要调用方手写 reflect.TypeOf(&T{}) 并做类型断言，
// 泛型版本把这两步收进类型参数里。

// typeOf 返回类型参数 T 的 reflect.Type
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 获取实体的 T 类型组件
//
// 用法:
//
//	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T1 组件的所有实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 组件的所有实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}

// CountWith 统计拥有 T 组件的实体数量（不分配结果切片）
func CountWith[T any](em *EntityManager) int {
	ct := typeOf[T]()
	n := 0
	for _, id := range em.order {
		if compMap, ok := em.components[id]; ok {
			if _, found := compMap[ct]; found {
				n++
			}
		}
	}
	return n
}
