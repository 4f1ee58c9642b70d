package transcript

import "math"

// Tolerance is the slack, in seconds, allowed before a word interval is
// considered to violate its parent segment's bounds and is clamped.
const Tolerance = 1e-6

// Interval is a time range in seconds. Both ends are inclusive and
// Start <= End holds for every interval produced by Clamp.
type Interval struct {
	// Start is the start time in seconds.
	Start float64 `json:"start"`
	// End is the end time in seconds.
	End float64 `json:"end"`
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Overlap returns the overlap duration in seconds between two intervals,
// or zero when they do not intersect.
func (iv Interval) Overlap(other Interval) float64 {
	lo := math.Max(iv.Start, other.Start)
	hi := math.Min(iv.End, other.End)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Valid reports whether the interval has non-negative timestamps and
// non-negative duration.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.End >= iv.Start
}

// Clamp returns a corrected copy of the interval: negative timestamps are
// floored at zero and End is raised to Start when the duration is negative.
// The boolean reports whether any correction was applied.
func (iv Interval) Clamp() (Interval, bool) {
	out := iv
	changed := false
	if out.Start < 0 {
		out.Start = 0
		changed = true
	}
	if out.End < out.Start {
		out.End = out.Start
		changed = true
	}
	return out, changed
}
