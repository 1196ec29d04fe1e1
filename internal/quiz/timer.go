package quiz

import (
	"fmt"
	"time"
)

// TickSource schedules a recurring callback. Every returns a stop
// function cancelling the interval. Tests substitute a fake source to
// fire ticks synchronously.
type TickSource interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// RealTicks is a TickSource backed by time.Ticker.
type RealTicks struct{}

func (RealTicks) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		t.Stop()
		close(done)
	}
}

// Ticker drives the running elapsed-time display. It emits the
// runner's elapsed time formatted as zero-padded MM:SS once per second.
type Ticker struct {
	runner *Runner
	src    TickSource
	stop   func()
}

// NewTicker creates a Ticker for runner. A nil source uses real time.
func NewTicker(runner *Runner, src TickSource) *Ticker {
	if src == nil {
		src = RealTicks{}
	}
	return &Ticker{runner: runner, src: src}
}

// Start begins ticking, invoking onTick with the formatted elapsed
// time every second. Starting while already running stops the earlier
// interval first, so at most one interval exists per Ticker.
func (t *Ticker) Start(onTick func(elapsed string)) {
	t.Stop()
	t.stop = t.src.Every(time.Second, func() {
		onTick(FormatElapsed(t.runner.ElapsedSeconds()))
	})
}

// Stop cancels the running interval. Safe to call when not running.
func (t *Ticker) Stop() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// FormatElapsed renders a second count as zero-padded MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
