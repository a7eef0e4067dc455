package model

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// DateState distinguishes a parsed date from missing or unparsable input.
type DateState uint8

// Date states.
const (
	DateAbsent DateState = iota
	DateKnown
	DateUnknown
)

// Date is a calendar day that may be absent (empty source) or unknown
// (non-empty source that failed to parse). Only known dates carry a day.
type Date struct {
	day   time.Time
	state DateState
	raw   string
}

// KnownDate returns a known date truncated to its UTC calendar day.
func KnownDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), state: DateKnown}
}

// UnknownDate records an unparsable source value.
func UnknownDate(raw string) Date {
	return Date{state: DateUnknown, raw: raw}
}

// ParseDate parses a YYYY-MM-DD value. Empty input yields an absent date,
// anything else that fails to parse yields an unknown date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return UnknownDate(s)
	}
	return KnownDate(t)
}

// MustDate parses s and panics when it is not a known date. Intended for fixtures.
func MustDate(s string) Date {
	d := ParseDate(s)
	if !d.IsKnown() {
		panic("model: invalid date " + s)
	}
	return d
}

func (d Date) State() DateState { return d.state }
func (d Date) IsKnown() bool    { return d.state == DateKnown }
func (d Date) IsUnknown() bool  { return d.state == DateUnknown }
func (d Date) IsAbsent() bool   { return d.state == DateAbsent }

// Time returns the calendar day; the zero time unless the date is known.
func (d Date) Time() time.Time { return d.day }

// Raw returns the unparsable source value of an unknown date.
func (d Date) Raw() string { return d.raw }

// AddDays shifts a known date; other states are returned unchanged.
func (d Date) AddDays(n int) Date {
	if !d.IsKnown() {
		return d
	}
	return KnownDate(d.day.AddDate(0, 0, n))
}

// Compare orders two known dates. The result is meaningless for other states.
func (d Date) Compare(o Date) int { return d.day.Compare(o.day) }

func (d Date) String() string {
	switch d.state {
	case DateKnown:
		return d.day.Format(DateLayout)
	case DateUnknown:
		return "unknown"
	default:
		return ""
	}
}

// MarshalJSON renders known dates as YYYY-MM-DD, unknown as "unknown" and absent as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsAbsent() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// Window is the inclusive day range a mission occupies.
type Window struct {
	MissionID string `json:"mission_id,omitempty"`
	Start     Date   `json:"start"`
	End       Date   `json:"end"`
}

// EffectiveEnd treats a missing end date as a single-day mission.
func (w Window) EffectiveEnd() Date {
	if w.End.IsAbsent() {
		return w.Start
	}
	return w.End
}

// Determinate reports whether both bounds are known days.
func (w Window) Determinate() bool {
	return w.Start.IsKnown() && w.EffectiveEnd().IsKnown()
}

// Overlaps reports whether two inclusive windows share at least one day.
// ok is false when either window is not determinate; overlap is then false.
func (w Window) Overlaps(o Window) (overlap, ok bool) {
	if !w.Determinate() || !o.Determinate() {
		return false, false
	}
	return w.Start.Compare(o.EffectiveEnd()) <= 0 && o.Start.Compare(w.EffectiveEnd()) <= 0, true
}

// Intersect returns the shared days of two overlapping windows.
func (w Window) Intersect(o Window) Window {
	start, end := w.Start, w.EffectiveEnd()
	if o.Start.Compare(start) > 0 {
		start = o.Start
	}
	if oe := o.EffectiveEnd(); oe.Compare(end) < 0 {
		end = oe
	}
	return Window{Start: start, End: end}
}
