package action

import "sync"

// Sender is the producer side of the action queue. Recipients hold a Sender, never a
// reference to the dispatcher or to each other.
type Sender interface {
	Send(Action)
}

// Queue is an unbounded FIFO of actions. Any goroutine may Send; one consumer Pops.
type Queue struct {
	mu    sync.Mutex
	items []Action
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Send(a Action) {
	if a == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()
}

// Pop removes the oldest action. ok is false when the queue is empty.
func (q *Queue) Pop() (a Action, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	a = q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return a, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
