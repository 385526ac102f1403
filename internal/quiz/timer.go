package quiz

import (
	"context"
	"sync"
	"time"
)

// Timer counts a quiz down once per tick and calls onExpire when it reaches
// zero. It never fires after Stop.
type Timer struct {
	mu        sync.Mutex
	remaining int
	elapsed   int
	interval  time.Duration
	onTick    func(remaining int)
	onExpire  func()
	cancel    context.CancelFunc
	done      chan struct{}
	stopped   bool
}

// NewTimer creates a timer of seconds ticks. onTick may be nil.
func NewTimer(seconds int, onTick func(remaining int), onExpire func()) *Timer {
	return &Timer{
		remaining: seconds,
		interval:  time.Second,
		onTick:    onTick,
		onExpire:  onExpire,
		done:      make(chan struct{}),
	}
}

// Start runs the countdown with a one-second interval until ctx ends, Stop
// is called, or time runs out.
func (t *Timer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	t.cancel = cancel
	interval := t.interval
	t.mu.Unlock()

	go t.run(ctx, interval)
}

func (t *Timer) run(ctx context.Context, interval time.Duration) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		t.remaining--
		t.elapsed++
		remaining := t.remaining
		expired := remaining <= 0
		if expired {
			t.stopped = true
		}
		t.mu.Unlock()

		if t.onTick != nil {
			t.onTick(remaining)
		}
		if expired {
			if t.onExpire != nil {
				t.onExpire()
			}
			return
		}
	}
}

// Stop cancels the countdown. It is safe to call more than once and before Start.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.stopped = true
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Done is closed once the countdown goroutine exits.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}
