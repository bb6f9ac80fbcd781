package core

// TimeUnit is the unit an interval request is expressed in
type TimeUnit uint8

const (
	Millis TimeUnit = iota
	Micros
)

func (u TimeUnit) String() string {
	if u == Micros {
		return "us"
	}
	return "ms"
}

// ParseTimeUnit parses "ms" or "us"
func ParseTimeUnit(s string) (TimeUnit, bool) {
	switch s {
	case "ms":
		return Millis, true
	case "us":
		return Micros, true
	}
	return 0, false
}

// perSecond returns how many of u fit in one second
func (u TimeUnit) perSecond() uint64 {
	if u == Micros {
		return 1000000
	}
	return 1000
}

// IntervalRequest is one configure call's target
type IntervalRequest struct {
	Interval uint32 // magnitude in Unit, or edge count in external clock mode
	Unit     TimeUnit
	Mode     CountMode
}

// TimerPlan is the register and software settings realizing a request.
//
// Divider*(Threshold+1) CPU cycles make one compare period and
// SoftwareDivisor compare periods make one elapsed interval.
//
// In CTC and external clock mode a compare period stands for
// AdjustedInterval units. The threshold is truncated, so a period can run
// short by TruncatedCycles; that drift accumulates and is reported, not
// corrected.
//
// In normal mode the counter only matches once per wrap, so Threshold is
// the full width and a compare period is not a whole number of units.
// AdjustedInterval equals Interval and TruncatedCycles is the shortfall of
// one whole elapsed interval.
type TimerPlan struct {
	Interval         uint32
	AdjustedInterval uint32
	SoftwareDivisor  uint32
	Divider          uint16 // 0 when clocked from the external pin
	Threshold        uint16
	TruncatedCycles  uint32
	Saturated        bool // the interval cannot be realized on this counter
}

// PeriodCycles returns the CPU cycles between compare matches
func (p TimerPlan) PeriodCycles() uint64 {
	return uint64(p.Divider) * (uint64(p.Threshold) + 1)
}

// DriftUnit names what TruncatedCycles is counted per
func (p TimerPlan) DriftUnit(mode CountMode) string {
	if mode == ModeNormal {
		return "interval"
	}
	return "period"
}

// Breakpoint is the longest interval a divider can realize on a counter
type Breakpoint struct {
	Divider uint16
	Limit   uint32
}

// Breakpoints derives the per-divider reach of a counter from the clock
// rate, ascending by divider.
func Breakpoints(clockHz uint32, unit TimeUnit, spec CounterSpec) []Breakpoint {
	clockHz = clockOrDefault(clockHz)
	span := uint64(spec.Max()) + 1

	bps := make([]Breakpoint, 0, len(spec.Dividers))
	for _, d := range spec.Dividers {
		limit := span * uint64(d) * unit.perSecond() / uint64(clockHz)
		if limit > 0xFFFFFFFF {
			limit = 0xFFFFFFFF
		}
		bps = append(bps, Breakpoint{Divider: d, Limit: uint32(limit)})
	}
	return bps
}

// MaxInterval returns the longest interval one compare period can realize
func MaxInterval(clockHz uint32, req IntervalRequest, spec CounterSpec) uint32 {
	if req.Mode == ModeExternalClock {
		return spec.Max() + 1
	}
	bps := Breakpoints(clockHz, req.Unit, spec)
	if len(bps) == 0 {
		return 0
	}
	return bps[len(bps)-1].Limit
}

// PlanInterval maps a request onto a counter. It returns false when the
// counter cannot count in the requested mode.
func PlanInterval(clockHz uint32, req IntervalRequest, spec CounterSpec) (TimerPlan, bool) {
	if req.Mode == ModeExternalClock && spec.Bits != 16 {
		return TimerPlan{}, false
	}
	if len(spec.Dividers) == 0 {
		return TimerPlan{}, false
	}
	clockHz = clockOrDefault(clockHz)

	interval := req.Interval
	if interval == 0 {
		interval = 1
	}
	plan := TimerPlan{
		Interval:         interval,
		AdjustedInterval: interval,
		SoftwareDivisor:  1,
	}

	if req.Mode == ModeNormal {
		plan.selectWrap(clockHz, req.Unit, spec)
		return plan, true
	}

	if reach := MaxInterval(clockHz, req, spec); interval > reach {
		plan.split(reach)
	}

	if req.Mode == ModeExternalClock {
		plan.Threshold = uint16(plan.AdjustedInterval - 1)
		return plan, true
	}

	plan.selectDivider(clockHz, req.Unit, spec)
	return plan, true
}

// split finds the software divisor giving the largest in-range quotient.
// Quotients are tried from the counter's reach downwards, so the loop is
// bounded by the reach and not by the request.
func (p *TimerPlan) split(reach uint32) {
	if reach == 0 {
		p.Saturated = true
		p.AdjustedInterval = 1
		p.SoftwareDivisor = p.Interval
		return
	}

	for q := reach; q > 1; q-- {
		if p.Interval%q == 0 {
			p.SoftwareDivisor = p.Interval / q
			p.AdjustedInterval = q
			return
		}
	}
	p.SoftwareDivisor = p.Interval
	p.AdjustedInterval = 1
}

// selectWrap plans normal mode, where one compare match fires per counter
// wrap. The divider leaving the smallest shortfall per interval wins, the
// largest on a tie. An interval shorter than one wrap at the fastest divider
// cannot be realized: it runs one wrap long and is marked saturated.
func (p *TimerPlan) selectWrap(clockHz uint32, unit TimeUnit, spec CounterSpec) {
	wanted := uint64(clockHz) * uint64(p.Interval) / unit.perSecond()
	span := uint64(spec.Max()) + 1

	best := -1
	var bestCount, bestDrift uint64
	for i, d := range spec.Dividers {
		period := span * uint64(d)
		if period > wanted {
			continue
		}
		count := wanted / period
		if count > 0xFFFFFFFF {
			continue
		}
		drift := wanted - count*period
		if best < 0 || drift <= bestDrift {
			best, bestCount, bestDrift = i, count, drift
		}
	}

	p.Threshold = uint16(spec.Max())
	if best < 0 {
		p.Saturated = true
		p.Divider = spec.Dividers[0]
		p.SoftwareDivisor = 1
		return
	}
	p.Divider = spec.Dividers[best]
	p.SoftwareDivisor = uint32(bestCount)
	p.TruncatedCycles = uint32(bestDrift)
}

// selectDivider walks the breakpoints in ascending order. A divider that
// realizes the interval without truncation wins (the largest such); failing
// that, the first divider whose breakpoint covers the interval.
func (p *TimerPlan) selectDivider(clockHz uint32, unit TimeUnit, spec CounterSpec) {
	scale := unit.perSecond()
	scaled := uint64(clockHz) * uint64(p.AdjustedInterval) // CPU cycles * scale

	first, exact := -1, -1
	bps := Breakpoints(clockHz, unit, spec)
	for i, bp := range bps {
		if bp.Limit < p.AdjustedInterval {
			continue
		}
		period := uint64(bp.Divider) * scale
		if scaled/period == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		if scaled%period == 0 {
			exact = i
		}
	}

	switch {
	case exact >= 0:
		p.program(bps[exact].Divider, scaled/(uint64(bps[exact].Divider)*scale)-1)
	case first >= 0:
		p.program(bps[first].Divider, scaled/(uint64(bps[first].Divider)*scale)-1)
	case p.Saturated || bps[len(bps)-1].Limit < p.AdjustedInterval:
		// Even the slowest setting is too fast: run at full width
		p.Saturated = true
		p.program(bps[len(bps)-1].Divider, uint64(spec.Max()))
	default:
		// Shorter than one tick at any divider
		p.program(bps[0].Divider, 0)
	}

	wanted := scaled / scale
	actual := uint64(p.Divider) * (uint64(p.Threshold) + 1)
	if wanted > actual {
		p.TruncatedCycles = uint32(wanted - actual)
	}
}

func (p *TimerPlan) program(divider uint16, threshold uint64) {
	p.Divider = divider
	p.Threshold = uint16(threshold)
}

func clockOrDefault(clockHz uint32) uint32 {
	if clockHz == 0 {
		return DefaultClockHz
	}
	return clockHz
}
