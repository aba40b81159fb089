package booking

import "time"

// Mode selects which temporal shape a booking uses.
type Mode string

const (
	// ModeSingleDay books one calendar date with optional clock times.
	ModeSingleDay Mode = "single-day"
	// ModeDateRange books a span of calendar dates; the optional clock times
	// apply to the boundary days only.
	ModeDateRange Mode = "date-range"
)

// Clock-time defaults applied when a window omits its times. An untimed
// booking holds the resource for the whole day.
const (
	DefaultStartTime = "00:00"
	DefaultEndTime   = "23:59"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	combinedLayout = dateLayout + " " + clockLayout
)

// Window is a booking's temporal shape as entered by the operator:
// calendar dates plus optional clock times, in one of two modes.
//
// Date is the single-day field. Older records populated only Date even in
// date-range mode, so the normalizer falls back to it when StartDate/EndDate
// are absent.
type Window struct {
	Mode      Mode   `json:"booking_mode"`
	Date      string `json:"date,omitempty"`       // "2006-01-02"
	StartDate string `json:"start_date,omitempty"` // "2006-01-02", date-range mode
	EndDate   string `json:"end_date,omitempty"`   // "2006-01-02", date-range mode
	StartTime string `json:"start_time,omitempty"` // "15:04", optional
	EndTime   string `json:"end_time,omitempty"`   // "15:04", optional
}

// Range is a normalized absolute instant pair. End is exclusive for overlap
// purposes.
type Range struct {
	Start time.Time
	End   time.Time
}

// Normalize converts the window into an absolute instant pair. Instants are
// built in the host's local time zone; no further zone handling is done.
// A window whose dates cannot be resolved or parsed yields an error rather
// than a zero range.
func (w Window) Normalize() (Range, error) {
	var startDate, endDate string

	switch w.Mode {
	case ModeSingleDay:
		startDate, endDate = w.Date, w.Date
	case ModeDateRange:
		startDate, endDate = w.StartDate, w.EndDate
		// Legacy records carry only the shared date field.
		if startDate == "" {
			startDate = w.Date
		}
		if endDate == "" {
			endDate = w.Date
		}
	default:
		return Range{}, ErrInvalidMode
	}

	if startDate == "" || endDate == "" {
		return Range{}, ErrDateRequired
	}

	start, err := combineLocal(startDate, orDefault(w.StartTime, DefaultStartTime))
	if err != nil {
		return Range{}, ErrUnparsableDate
	}
	end, err := combineLocal(endDate, orDefault(w.EndTime, DefaultEndTime))
	if err != nil {
		return Range{}, ErrUnparsableDate
	}

	return Range{Start: start, End: end}, nil
}

// Validate applies the structural ordering checks that gate persistence.
// It is independent of conflict checking: a window can validate cleanly and
// still conflict, or fail validation before any conflict check runs.
func (w Window) Validate() error {
	switch w.Mode {
	case ModeDateRange:
		start, err1 := time.Parse(dateLayout, w.StartDate)
		end, err2 := time.Parse(dateLayout, w.EndDate)
		if err1 == nil && err2 == nil && start.After(end) {
			return ErrStartDateOrder
		}
	case ModeSingleDay:
		// Time-of-day ordering is only meaningful within a single day, so
		// this check is skipped in date-range mode even when both times are set.
		if w.StartTime != "" && w.EndTime != "" {
			start, err1 := time.Parse(clockLayout, w.StartTime)
			end, err2 := time.Parse(clockLayout, w.EndTime)
			if err1 == nil && err2 == nil && !start.Before(end) {
				return ErrStartTimeOrder
			}
		}
	}
	return nil
}

// Overlaps reports whether two ranges overlap. The comparison is strict on
// both sides, so a booking ending exactly when another starts does not
// conflict; same-instant handoffs are allowed.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

func combineLocal(date, clock string) (time.Time, error) {
	return time.ParseInLocation(combinedLayout, date+" "+clock, time.Local)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
