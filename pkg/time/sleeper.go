package ltime

import (
	"math/rand"
	"time"
)

type Sleeper interface {
	Sleep(duration time.Duration)
}

type WallSleeper struct{}

func (WallSleeper) Sleep(duration time.Duration) {
	time.Sleep(duration)
}

var _ Sleeper = WallSleeper{}

func NewWallSleeper() WallSleeper {
	return WallSleeper{}
}

type TestingSleeper struct{}

func (TestingSleeper) Sleep(duration time.Duration) {
}

var _ Sleeper = TestingSleeper{}

func NewTestingSleeper() TestingSleeper {
	return TestingSleeper{}
}

// AdvancingSleeper advances a TestingWatch instead of blocking, so
// deadline-driven loops can be exercised without real waits.
type AdvancingSleeper struct {
	Watch *TestingWatch
}

func (s AdvancingSleeper) Sleep(duration time.Duration) {
	s.Watch.Current = s.Watch.Current.Add(duration)
}

var _ Sleeper = AdvancingSleeper{}

func NewAdvancingSleeper(watch *TestingWatch) AdvancingSleeper {
	return AdvancingSleeper{Watch: watch}
}

func JitteredDuration(duration time.Duration) time.Duration {
	// Add some jitter to make duration 20% smaller or longer
	return time.Duration(float64(duration) * (0.8 + 0.4*rand.Float64()))
}

func Sleep(duration time.Duration) {
	time.Sleep(JitteredDuration(duration))
}
