package feed

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/amiyamandal-dev/bizbrief/internal/loop"
)

// DefaultDebounce is the quiet period before typed search text is committed
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs the last triggered function once the input has been quiet
// for the delay. The function runs on the loop. Cancel and every new
// Trigger invalidate a pending run, even one whose timer already fired.
type Debouncer struct {
	clock clock.Clock
	sched loop.Scheduler
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *clock.Timer
}

// NewDebouncer creates a debouncer. A nil clock uses the wall clock.
func NewDebouncer(clk clock.Clock, sched loop.Scheduler, delay time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{clock: clk, sched: sched, delay: delay}
}

// Trigger (re)starts the quiet period for fn
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.sched.Post(func() {
			if !d.fire(gen) {
				return
			}
			fn()
		})
	})
}

// Cancel drops any pending run
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether a run is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// fire claims the run for generation gen
func (d *Debouncer) fire(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.timer = nil
	return true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
