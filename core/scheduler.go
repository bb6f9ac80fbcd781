package core

// Alarm is a main-loop callback due at a tick of the application timer
type Alarm struct {
	WakeTime uint32
	Handler  func(*Alarm) uint8
	Next     *Alarm
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps alarms sorted by WakeTime and fires them as timer
// intervals elapse. It runs entirely in the main loop; nothing here is
// touched from the compare-match vector.
type Scheduler struct {
	list *Alarm
	now  uint32
}

// Now returns the number of timer intervals the scheduler has seen
func (s *Scheduler) Now() uint32 {
	return s.now
}

// Schedule adds an alarm, replacing it if it is already queued
func (s *Scheduler) Schedule(a *Alarm) {
	s.Cancel(a)
	s.insert(a)
}

// After schedules a to fire delay intervals from now
func (s *Scheduler) After(a *Alarm, delay uint32) {
	a.WakeTime = s.now + delay
	s.Schedule(a)
}

// Cancel removes a queued alarm
func (s *Scheduler) Cancel(a *Alarm) {
	if s.list == a {
		s.list = a.Next
		a.Next = nil
		return
	}
	for cur := s.list; cur != nil; cur = cur.Next {
		if cur.Next == a {
			cur.Next = a.Next
			a.Next = nil
			return
		}
	}
}

// insert places the alarm in sorted order. Wake times are compared as a
// signed distance so the order survives counter wraparound.
func (s *Scheduler) insert(a *Alarm) {
	if s.list == nil || before(a.WakeTime, s.list.WakeTime) {
		a.Next = s.list
		s.list = a
		return
	}

	cur := s.list
	for cur.Next != nil && !before(a.WakeTime, cur.Next.WakeTime) {
		cur = cur.Next
	}
	a.Next = cur.Next
	cur.Next = a
}

// Advance moves time forward by elapsed intervals and runs every alarm
// that became due. A handler returning SF_RESCHEDULE is requeued at the
// WakeTime it set.
func (s *Scheduler) Advance(elapsed uint32) {
	s.now += elapsed

	for s.list != nil && !before(s.now, s.list.WakeTime) {
		a := s.list
		s.list = a.Next
		a.Next = nil

		if a.Handler(a) == SF_RESCHEDULE {
			s.insert(a)
		}
	}
}

func before(a, b uint32) bool {
	return int32(a-b) < 0
}
