package event

import "sync"

// QueueSize is the capacity of the event queue.
const QueueSize = 1024

// Queue is the multi-producer, single-consumer channel every producer
// pushes into. After Close, pushes are dropped instead of blocking.
type Queue struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		ch:   make(chan Event, QueueSize),
		done: make(chan struct{}),
	}
}

// Push enqueues ev, blocking while the queue is full. It reports false if
// the queue was closed.
func (q *Queue) Push(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- ev:
		return true
	case <-q.done:
		return false
	}
}

// Close stops accepting events and releases blocked producers.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Done is closed when the queue is closed.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Next blocks for the next event. It reports false once the queue is
// closed.
func (q *Queue) Next() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	case <-q.done:
		return nil, false
	}
}

// TryNext returns a queued event without blocking.
func (q *Queue) TryNext() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return nil, false
	}
}

// Handler owns all application state. Handle and Draw are only ever called
// from the dispatcher goroutine.
type Handler interface {
	Handle(Event)
	Running() bool
	Draw()
}

// Run applies events until h stops running or the queue is closed. Each
// iteration waits for one event, applies everything already queued (at
// most maxDrain events when maxDrain > 0) and then draws once.
func Run(q *Queue, h Handler, maxDrain int) {
	defer q.Close()

	for h.Running() {
		ev, ok := q.Next()
		if !ok {
			return
		}
		h.Handle(ev)

		applied := 1
		for h.Running() && (maxDrain <= 0 || applied < maxDrain) {
			ev, ok := q.TryNext()
			if !ok {
				break
			}
			h.Handle(ev)
			applied++
		}

		if h.Running() {
			h.Draw()
		}
	}
}
