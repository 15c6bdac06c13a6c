// Package clock provides the time source for response envelopes and default
// search dates. Tests inject a MockClock; deployments can pin the time
// through an environment variable for reproducible demos.
package clock

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Clock provides an abstraction for time operations.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// NowUnixMilli returns the current time as Unix milliseconds
	NowUnixMilli() int64
}

// RealClock implements Clock using actual system time.
// This is the default implementation for production use.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NowUnixMilli returns the current time as Unix milliseconds.
func (RealClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// MockClock implements Clock and provides a controllable, thread-safe time for tests.
// Use NewMockClock to create instances.
type MockClock struct {
	currentTime time.Time
	mu          sync.Mutex
}

// NewMockClock creates a new MockClock set to the specified time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mock clock's current time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// NowUnixMilli returns the mock clock's current time as Unix milliseconds.
func (m *MockClock) NowUnixMilli() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime.UnixMilli()
}

// Set changes the mock clock's current time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the mock clock by the specified duration.
// Use positive durations to move forward, negative to move backward.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FromEnv returns a MockClock frozen at the time held in envVar, or RealClock
// when the variable is unset. Values are RFC3339 or "2006-01-02T15:04" in loc.
func FromEnv(envVar string, loc *time.Location) (Clock, error) {
	raw := strings.TrimSpace(os.Getenv(envVar))
	if raw == "" {
		return RealClock{}, nil
	}
	t, err := ParseSearchTime(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envVar, err)
	}
	return NewMockClock(t), nil
}

// ParseSearchTime accepts RFC3339, or the minute-precision layout search
// forms submit, interpreted in loc (UTC when nil).
func ParseSearchTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{SearchLayout, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time %q: expected RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD", s)
}

// SearchLayout is the date format the search backend expects.
const SearchLayout = "2006-01-02T15:04"

// SearchTime is c's current time truncated to the minute, the default
// departure for a search that names none.
func SearchTime(c Clock) time.Time {
	return c.Now().Truncate(time.Minute)
}
