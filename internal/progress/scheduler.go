package progress

import "time"

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler arms a runtime timer per call. When Dispatch is set the
// callback is handed to it instead of running on the timer goroutine, which
// lets UI code move ticks onto its main thread.
type TimerScheduler struct {
	Dispatch func(func())
}

func (s TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		if s.Dispatch != nil {
			s.Dispatch(f)
			return
		}
		f()
	})
}
