package clock

import "time"

// Clock abstracts "now" so date-sensitive rules (same-day rejection, expiry)
// are deterministic under test.
type Clock interface {
	Now() time.Time
}

const DateLayout = "2006-01-02"

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today is the server-local calendar date, no time component.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
