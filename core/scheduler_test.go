package core

import "testing"

func TestSchedulerOrder(t *testing.T) {
	var s Scheduler
	var fired []string

	mk := func(name string) *Alarm {
		return &Alarm{Handler: func(*Alarm) uint8 {
			fired = append(fired, name)
			return SF_DONE
		}}
	}

	a, b, c := mk("a"), mk("b"), mk("c")
	s.After(c, 30)
	s.After(a, 10)
	s.After(b, 20)

	s.Advance(15)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("after 15 ticks fired %v", fired)
	}
	s.Advance(15)
	if len(fired) != 3 || fired[1] != "b" || fired[2] != "c" {
		t.Errorf("after 30 ticks fired %v", fired)
	}
}

func TestSchedulerReschedule(t *testing.T) {
	var s Scheduler
	count := 0
	a := &Alarm{Handler: func(a *Alarm) uint8 {
		count++
		a.WakeTime += 10
		return SF_RESCHEDULE
	}}
	s.After(a, 10)

	// One large step catches up on every missed period
	s.Advance(35)
	if count != 3 {
		t.Errorf("fired %d times in 35 ticks, want 3", count)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	fired := false
	a := &Alarm{Handler: func(*Alarm) uint8 { fired = true; return SF_DONE }}
	b := &Alarm{Handler: func(*Alarm) uint8 { return SF_DONE }}

	s.After(b, 1)
	s.After(a, 5)
	s.Cancel(a)
	s.Advance(10)
	if fired {
		t.Error("cancelled alarm fired")
	}

	// Scheduling twice keeps a single entry
	n := 0
	c := &Alarm{Handler: func(*Alarm) uint8 { n++; return SF_DONE }}
	s.After(c, 1)
	s.After(c, 2)
	s.Advance(5)
	if n != 1 {
		t.Errorf("alarm fired %d times, want 1", n)
	}
}

func TestSchedulerWraparound(t *testing.T) {
	s := Scheduler{now: 0xFFFFFFF0}
	fired := false
	a := &Alarm{Handler: func(*Alarm) uint8 { fired = true; return SF_DONE }}

	s.After(a, 0x20) // wakes past the wrap
	s.Advance(0x10)
	if fired {
		t.Error("fired before its wake time")
	}
	s.Advance(0x10)
	if !fired {
		t.Error("did not fire after the wrap")
	}
}
