package utils

import "time"

// DeltaTimer measures the time between consecutive frames
type DeltaTimer struct {
	time.Time
	now func() time.Time
}

func NewDeltaTimer(now func() time.Time) *DeltaTimer {
	return &DeltaTimer{now: now}
}

// Next returns the time since the previous call, or 0 on the first call
func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := d.clock()

	defer d.Set(now)
	if d.IsZero() {
		return 0
	}
	return now.Sub(d.Time)
}

func (d *DeltaTimer) Set(t time.Time) {
	d.Time = t
}

func (d *DeltaTimer) clock() time.Time {
	if d.now == nil {
		return time.Now()
	}
	return d.now()
}
