// Package clock abstracts delayed callbacks so the simulation driver can be
// exercised without real timers.
package clock

import "time"

// Timer is a pending callback. Stop reports whether it prevented the
// callback from running.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

// System returns the wall-clock scheduler backed by time.AfterFunc.
func System() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
