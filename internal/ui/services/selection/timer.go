package selection

import (
	"time"
)

// Timing constants. The dwell delay is how long a tentative pointer
// selection waits before committing; the after-select delay batches
// afterselect dispatch when delayed select is configured.
const (
	DwellDelay       = 400 * time.Millisecond
	AfterSelectDelay = 10 * time.Millisecond
)

// ScheduleFunc defers fn by d and returns a cancel function. The default
// wraps time.AfterFunc; tests substitute a manual scheduler.
type ScheduleFunc func(d time.Duration, fn func()) func()

func defaultSchedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// singleSlot owns at most one outstanding deferred call. Arming it
// cancels whatever was pending before, so teardown and re-arming are
// deterministic.
type singleSlot struct {
	schedule ScheduleFunc
	cancel   func()
}

func newSingleSlot(schedule ScheduleFunc) *singleSlot {
	if schedule == nil {
		schedule = defaultSchedule
	}
	return &singleSlot{schedule: schedule}
}

// Arm cancels any pending call and schedules fn after d
func (s *singleSlot) Arm(d time.Duration, fn func()) {
	s.Cancel()
	s.cancel = s.schedule(d, fn)
}

// Cancel drops the pending call, if any
func (s *singleSlot) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
