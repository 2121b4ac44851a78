// Package dispatch serializes UI-observable mutations onto a single
// goroutine. Background work (capture callbacks, network completions)
// hands its result to Dispatch instead of touching shared state directly,
// so the rendering side never sees a torn write.
package dispatch

import (
	"context"
	"sync"
)

type Loop struct {
	tasks chan func()

	done      chan struct{}
	closeOnce sync.Once
}

func New(capacity int) *Loop {
	return &Loop{
		tasks: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Run owns the loop goroutine. It applies queued mutations in submission
// order until ctx is done, then marks the loop stopped so late completions
// become no-ops.
func (l *Loop) Run(ctx context.Context) {
	defer l.closeOnce.Do(func() {
		close(l.done)
	})

	for {
		select {
		case <-ctx.Done():
			return

		case task := <-l.tasks:
			task()
		}
	}
}

// Dispatch enqueues a mutation onto the loop goroutine. It reports false
// when the loop has already stopped; the mutation is then dropped, which
// is the required behavior for results arriving after teardown.
func (l *Loop) Dispatch(task func()) bool {
	select {
	case <-l.done:
		return false
	case l.tasks <- task:
		return true
	}
}
