package wallet

import (
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

type lockTimer struct {
	timeout time.Duration
	fire    func()
	quit    chan struct{}
}

// lockTimers is the registry of the auto-lock timers, keyed by slot. A
// timer removes itself from the registry when it fires.
type lockTimers struct {
	mu     sync.Mutex
	clock  clock.Clock
	timers map[uint32]*lockTimer
}

func newLockTimers(clk clock.Clock) *lockTimers {
	return &lockTimers{
		clock:  clk,
		timers: make(map[uint32]*lockTimer),
	}
}

// arm (re)schedules fire to run after timeout for the given slot, canceling
// any timer already armed for it.
func (t *lockTimers) arm(index uint32, timeout time.Duration, fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.armLocked(index, timeout, fire)
}

// reset reschedules the timer of the given slot, if any.
func (t *lockTimers) reset(index uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[index]; ok {
		t.armLocked(index, timer.timeout, timer.fire)
	}
}

func (t *lockTimers) cancel(index uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[index]; ok {
		close(timer.quit)
		delete(t.timers, index)
	}
}

func (t *lockTimers) stopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for index, timer := range t.timers {
		close(timer.quit)
		delete(t.timers, index)
	}
}

func (t *lockTimers) isArmed(index uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.timers[index]
	return ok
}

func (t *lockTimers) armLocked(
	index uint32, timeout time.Duration, fire func(),
) {
	if old, ok := t.timers[index]; ok {
		close(old.quit)
	}

	timer := &lockTimer{timeout, fire, make(chan struct{})}
	t.timers[index] = timer
	tick := t.clock.TickAfter(timeout)

	go func() {
		select {
		case <-tick:
		case <-timer.quit:
			return
		}

		t.mu.Lock()
		if t.timers[index] != timer {
			t.mu.Unlock()
			return
		}
		delete(t.timers, index)
		t.mu.Unlock()

		timer.fire()
	}()
}
