package throttle

import "math"

// ShouldAlert reports whether a new low disk space notification is due,
// given the current free-space ratio, the configured threshold and the
// previously observed ratio. It never alerts while free space meets the
// threshold, and while below the threshold it only re-alerts when free
// space has dropped by at least one whole percentage point since the last
// observation. This keeps a sustained low-space condition from producing a
// notification on every cycle.
func ShouldAlert(current, threshold, previous float64) bool {
	if current >= threshold {
		return false
	}

	return wholePercent(current) < wholePercent(previous)
}

// wholePercent intentionally floors, so movement within a single
// percentage point never triggers.
func wholePercent(ratio float64) int {
	return int(math.Floor(ratio * 100))
}
