package module

import "time"

// TimeProvider is the clock measuring module statistics.
type TimeProvider = timeProvider

// WithTimeProvider overrides the clock measuring module statistics.
func WithTimeProvider(tp TimeProvider) Options {
	return func(o *dispatchOptions) {
		o.timeProvider = tp
	}
}

// StepClock is a clock moving forward by Step every time it is read.
type StepClock struct {
	Current time.Time
	Step    time.Duration
}

// Now implements TimeProvider.
func (c *StepClock) Now() time.Time {
	c.Current = c.Current.Add(c.Step)
	return c.Current
}
