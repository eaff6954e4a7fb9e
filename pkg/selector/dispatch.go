package selector

import (
	"context"
	"sync"
)

// Dispatcher runs fetch continuations on a single logical thread.
type Dispatcher interface {
	Post(task func())
}

// DispatcherFunc adapts a function into a Dispatcher.
type DispatcherFunc func(task func())

// Post calls the underlying function.
func (fn DispatcherFunc) Post(task func()) {
	fn(task)
}

// Serial runs each task immediately on the posting goroutine, one at a time.
type Serial struct {
	mu sync.Mutex
}

func (s *Serial) Post(task func()) {
	if task == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task()
}

// Loop queues tasks until the owner drains them, mirroring a UI event loop.
// Post never blocks.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

func NewLoop() *Loop {
	return &Loop{notify: make(chan struct{}, 1)}
}

func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Len reports the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs queued tasks, including tasks posted while draining, and returns
// how many ran.
func (l *Loop) Drain() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
		ran++
	}
}

// Run drains the queue whenever tasks arrive until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
	}
}
