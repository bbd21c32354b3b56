package core

import "time"

// SetClock replaces the domain clock for the duration of a test.
func SetClock(f func() time.Time) (restore func()) {
	prev := now
	now = f
	return func() { now = prev }
}

// StepClock returns a clock starting at start that advances by step on every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
