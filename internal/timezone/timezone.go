package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock gives the clinic-local time. Services take one so tests can pin "now".
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) *Clock {
	return &Clock{loc: Location(tz), now: time.Now}
}

// FixedClock always reports t, in t's location.
func FixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Today is the clinic-local date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// CurrentMonth is the clinic-local month as YYYY-MM.
func (c *Clock) CurrentMonth() string {
	return c.Now().Format(MonthLayout)
}

// ParseLocal reads a stored date and time as clinic-local wall time.
func (c *Clock) ParseLocal(date, clock string) (time.Time, error) {
	if clock == "" {
		clock = "00:00"
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, c.loc)
}
