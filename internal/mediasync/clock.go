package mediasync

import "time"

// Clock schedules the synchronizer's delayed swaps. Tests substitute a
// manually fired implementation.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
