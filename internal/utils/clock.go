package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// Window returns the analysis window [now-days, now].
func Window(clock Clock, days int) (time.Time, time.Time) {
	now := clock.Now()
	return now.AddDate(0, 0, -days), now
}

// StartOfWeek returns midnight of the first day of the week containing t, in t's location.
func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(firstDay) + 7) % 7
	year, month, day := t.Date()
	return time.Date(year, month, day-offset, 0, 0, 0, 0, t.Location())
}
