package core

import "testing"

func TestTimingRingKeepsNewest(t *testing.T) {
	NewSimulatedMCU()
	ClearTimingRing()

	for i := uint32(1); i <= TimingRingSize+4; i++ {
		RecordTiming(EvtElapsed, 1, i, i, 0)
	}

	events := TimingEvents()
	if len(events) != TimingRingSize {
		t.Fatalf("got %d events, want %d", len(events), TimingRingSize)
	}
	if events[0].Clock != 5 || events[len(events)-1].Clock != TimingRingSize+4 {
		t.Errorf("ring order: first %d last %d", events[0].Clock, events[len(events)-1].Clock)
	}

	ClearTimingRing()
	if len(TimingEvents()) != 0 {
		t.Error("ClearTimingRing left events")
	}
}

func TestDebugPrintlnGated(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(false)

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	Diagnostic("shown")
	SetDebugEnabled(true)
	DebugPrintln("debug")

	if len(got) != 2 || got[0] != "shown" || got[1] != "debug" {
		t.Errorf("output %q", got)
	}
}

func TestNumberFormatting(t *testing.T) {
	if itoa(-42) != "-42" || itoa(0) != "0" || utoa(4294967295) != "4294967295" {
		t.Error("itoa/utoa mismatch")
	}

	for s, want := range map[string]uint32{"0": 0, "5000": 5000, "4294967295": 4294967295} {
		if got, ok := parseUint(s); !ok || got != want {
			t.Errorf("parseUint(%q) = %d, %v", s, got, ok)
		}
	}
	for _, s := range []string{"", "-1", "+1", "12a", "4294967296"} {
		if _, ok := parseUint(s); ok {
			t.Errorf("parseUint(%q) accepted", s)
		}
	}
}
