package game

// Event is a message posted between session components. Events are queued and
// handled on the tick thread after the timers that raised them have returned.
type Event interface {
	event()
}

// MiningCompleted is posted when an asteroid reaches full progress.
type MiningCompleted struct {
	AsteroidID string
	Kind       AsteroidKind
}

func (MiningCompleted) event() {}

// eventQueue is a FIFO drained once per pump.
type eventQueue struct {
	items []Event
}

func (q *eventQueue) post(e Event) { q.items = append(q.items, e) }

// drain hands out queued events, including any posted while draining.
func (q *eventQueue) drain(fn func(Event)) int {
	n := 0
	for len(q.items) > 0 {
		e := q.items[0]
		q.items = q.items[1:]
		fn(e)
		n++
	}
	return n
}

func (q *eventQueue) reset() { q.items = nil }
