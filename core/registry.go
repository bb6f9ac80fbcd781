package core

// vectors maps each counter unit to the controller that owns it. The
// compare-match vectors are free functions and dispatch through this table.
var vectors [NumCounters]*TimerController

func registerVector(unit CounterUnit, t *TimerController) {
	if unit >= NumCounters {
		panic("timer: invalid counter unit " + utoa(uint32(unit)))
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	if vectors[unit] != nil {
		panic("timer: counter " + utoa(uint32(unit)) + " already owned")
	}
	vectors[unit] = t
}

func releaseVector(unit CounterUnit, t *TimerController) {
	if unit >= NumCounters {
		return
	}
	state := disableInterrupts()
	if vectors[unit] == t {
		vectors[unit] = nil
	}
	restoreInterrupts(state)
}

// ControllerFor returns the controller that owns unit, or nil
func ControllerFor(unit CounterUnit) *TimerController {
	if unit >= NumCounters {
		return nil
	}
	return vectors[unit]
}

// HandleCompareMatch is the body of the compare-match vector for unit.
// It runs with interrupts disabled.
func HandleCompareMatch(unit CounterUnit) {
	countSystemTick()
	if unit >= NumCounters {
		return
	}
	if t := vectors[unit]; t != nil {
		t.compareMatch()
	}
}
