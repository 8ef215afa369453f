package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入事件
// 鼠标和触摸统一在这里整理成管理器的触发器
type InputState struct {
	// 指针位置在本帧发生了变化
	Moved bool
	// 当前指针位置
	X, Y int
	// 鼠标左键刚刚按下
	Clicked bool
	// 本帧新增的触点数量
	NewTouches int
	// 当前所有触点数量
	Touches int
}

// pointerTracker 记住上一帧的光标位置，用于合成移动事件
type pointerTracker struct {
	x, y int
	seen bool
}

// observe 记录光标位置，返回相对上一次是否移动
// 第一次观察只建立基准，不算移动
func (t *pointerTracker) observe(x, y int) bool {
	if !t.seen {
		t.seen = true
		t.x, t.y = x, y
		return false
	}
	if x == t.x && y == t.y {
		return false
	}
	t.x, t.y = x, y
	return true
}

// readInput 读取当前帧的输入状态
func readInput(tracker *pointerTracker) InputState {
	state := InputState{}

	state.X, state.Y = ebiten.CursorPosition()
	state.Moved = tracker.observe(state.X, state.Y)
	state.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	state.NewTouches = len(inpututil.AppendJustPressedTouchIDs(nil))
	state.Touches = len(ebiten.AppendTouchIDs(nil))

	return state
}
