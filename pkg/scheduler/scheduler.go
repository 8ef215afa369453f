// Package scheduler 提供协作式延迟任务调度器
//
// Scheduler 不启动任何 goroutine，也不读取墙钟：时间只在调用 Advance 时前进，
// 到期任务在调用方的 goroutine 中按到期顺序同步执行。渲染循环每帧调用一次
// Advance(dt)，测试则可以精确推进任意时长。
//
// 任务可以带键（Key）。同一个键同时最多只有一个待执行任务：
// 用已有的键再次 Schedule 会替换旧任务，Cancel 按键取消。
package scheduler

import (
	"container/heap"
	"time"
)

// Key 是任务的标识，空键表示匿名任务（不可取消、不可替换）
type Key string

// Task 是到期时执行的回调
type Task func()

type entry struct {
	key   Key
	due   time.Duration
	seq   uint64 // 同一到期时间按调度顺序执行
	fn    Task
	index int // 在堆中的位置，-1 表示已出堆
}

type taskQueue []*entry

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler 协作式虚拟时钟调度器
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
	byKey map[Key]*entry
}

// New 创建一个时钟位于 0 的调度器
func New() *Scheduler {
	return &Scheduler{
		queue: make(taskQueue, 0, 64),
		byKey: make(map[Key]*entry),
	}
}

// Now 返回调度器的当前虚拟时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending 返回尚未执行的任务数量
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After 在 delay 之后执行匿名任务
func (s *Scheduler) After(delay time.Duration, fn Task) {
	s.Schedule("", delay, fn)
}

// Schedule 在 delay 之后执行 fn
//
// delay 小于 0 时按 0 处理。非空 key 已有待执行任务时，旧任务被替换。
// 在任务回调中调度的 delay=0 任务会在同一次 Advance 中执行。
func (s *Scheduler) Schedule(key Key, delay time.Duration, fn Task) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	if key != "" {
		s.Cancel(key)
	}

	s.seq++
	e := &entry{
		key: key,
		due: s.now + delay,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, e)
	if key != "" {
		s.byKey[key] = e
	}
}

// Cancel 取消键为 key 的待执行任务，返回是否确实取消了任务
func (s *Scheduler) Cancel(key Key) bool {
	e, ok := s.byKey[key]
	if !ok {
		return false
	}
	delete(s.byKey, key)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	return true
}

// Scheduled 检查键为 key 的任务是否仍在等待执行
func (s *Scheduler) Scheduled(key Key) bool {
	_, ok := s.byKey[key]
	return ok
}

// DueIn 返回键为 key 的任务距离到期的剩余时间
func (s *Scheduler) DueIn(key Key) (time.Duration, bool) {
	e, ok := s.byKey[key]
	if !ok {
		return 0, false
	}
	return e.due - s.now, true
}

// Advance 将时钟推进 dt，并按到期顺序执行所有到期任务
//
// 每个任务执行时 Now() 等于该任务的到期时间，所以回调里再调度的任务
// 以精确的到期时刻为基准，不会累积帧误差。返回执行的任务数量。
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	ran := 0
	for len(s.queue) > 0 && s.queue[0].due <= target {
		e := heap.Pop(&s.queue).(*entry)
		if e.key != "" {
			delete(s.byKey, e.key)
		}
		if e.due > s.now {
			s.now = e.due
		}
		e.fn()
		ran++
	}
	s.now = target

	return ran
}
