package services

import "time"

// StreakPolicy is the tolerance window for check-in continuity. The two
// thresholds are deliberately not a clean 24h boundary: check-ins within
// HoldWithin of the previous one do not count again (same day), gaps up to
// BreakAfter still extend the streak (grace for shifting check-in times),
// and anything longer resets it.
type StreakPolicy struct {
	HoldWithin time.Duration
	BreakAfter time.Duration
}

func DefaultStreakPolicy() StreakPolicy {
	return StreakPolicy{
		HoldWithin: 20 * time.Hour,
		BreakAfter: 48 * time.Hour,
	}
}

// Next returns the streak value after a check-in at now, given the current
// streak and the previous check-in time (nil for a first check-in).
func (p StreakPolicy) Next(current int, lastCheckIn *time.Time, now time.Time) int {
	if lastCheckIn == nil {
		return 1
	}

	elapsed := now.Sub(*lastCheckIn)
	switch {
	case elapsed > p.BreakAfter:
		return 1
	case elapsed > p.HoldWithin:
		return current + 1
	default:
		return current
	}
}
