package game

import (
	"container/heap"
	"sync"
	"time"
)

// Clock supplies the wall time timers are measured against.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable clock for tests and replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Time
	interval time.Duration // 0 for one-shot
	oneShot  func()
	repeat   func() bool
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].id < h[j].id
	}
	return h[i].due.Before(h[j].due)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler holds deferred callbacks. Nothing runs on its own: callbacks fire
// only inside RunDue, which the session calls from its tick, so timer work and
// physics never interleave.
type Scheduler struct {
	clock  Clock
	timers timerHeap
	byID   map[TimerID]*timer
	nextID TimerID
}

// NewScheduler creates a scheduler reading clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock, byID: make(map[TimerID]*timer)}
}

// Now returns the scheduler's clock reading.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(&timer{due: s.clock.Now().Add(d), oneShot: fn})
}

// Every runs fn each interval until it returns false. Missed intervals are
// caught up one by one on the next RunDue, each measured from the previous due
// time rather than from now.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) TimerID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(&timer{due: s.clock.Now().Add(interval), interval: interval, repeat: fn})
}

func (s *Scheduler) add(t *timer) TimerID {
	s.nextID++
	t.id = s.nextID
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel drops a pending timer. Returns false if it already ran or was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.timers, t.index)
	delete(s.byID, id)
	return true
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() {
	s.timers = s.timers[:0]
	clear(s.byID)
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int { return len(s.timers) }

// RunDue fires every timer due at or before now, in due order, including
// timers that become due while running. Returns the number of callbacks run.
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	ran := 0
	for len(s.timers) > 0 && !s.timers[0].due.After(now) {
		t := heap.Pop(&s.timers).(*timer)
		delete(s.byID, t.id)
		ran++
		if t.repeat == nil {
			t.oneShot()
			continue
		}
		if t.repeat() {
			t.due = t.due.Add(t.interval)
			heap.Push(&s.timers, t)
			s.byID[t.id] = t
		}
	}
	return ran
}
