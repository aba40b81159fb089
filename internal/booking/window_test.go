package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTime(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestWindowNormalize(t *testing.T) {
	t.Run("single-day with explicit times", func(t *testing.T) {
		w := Window{Mode: ModeSingleDay, Date: "2026-03-01", StartTime: "09:00", EndTime: "11:30"}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 1, 9, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 1, 11, 30), r.End)
	})

	t.Run("single-day without times spans the whole day", func(t *testing.T) {
		w := Window{Mode: ModeSingleDay, Date: "2026-03-01"}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 1, 0, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 1, 23, 59), r.End)
	})

	t.Run("date-range with boundary times", func(t *testing.T) {
		w := Window{
			Mode:      ModeDateRange,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-05",
			StartTime: "14:00",
			EndTime:   "10:00",
		}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 1, 14, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 5, 10, 0), r.End)
	})

	t.Run("date-range without times defaults the boundaries", func(t *testing.T) {
		w := Window{Mode: ModeDateRange, StartDate: "2026-03-01", EndDate: "2026-03-05"}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 1, 0, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 5, 23, 59), r.End)
	})

	t.Run("date-range falls back to shared date field", func(t *testing.T) {
		// Older records populated only the single date field.
		w := Window{Mode: ModeDateRange, Date: "2026-03-02"}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 2, 0, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 2, 23, 59), r.End)
	})

	t.Run("date-range uses date fallback per missing boundary", func(t *testing.T) {
		w := Window{Mode: ModeDateRange, Date: "2026-03-02", EndDate: "2026-03-04"}

		r, err := w.Normalize()
		require.NoError(t, err)
		assert.Equal(t, localTime(2026, 3, 2, 0, 0), r.Start)
		assert.Equal(t, localTime(2026, 3, 4, 23, 59), r.End)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name string
			w    Window
			want error
		}{
			{"unknown mode", Window{Mode: "weekly", Date: "2026-03-01"}, ErrInvalidMode},
			{"empty mode", Window{Date: "2026-03-01"}, ErrInvalidMode},
			{"single-day without date", Window{Mode: ModeSingleDay}, ErrDateRequired},
			{"date-range without any date", Window{Mode: ModeDateRange}, ErrDateRequired},
			{"unparsable date", Window{Mode: ModeSingleDay, Date: "03/01/2026"}, ErrUnparsableDate},
			{"unparsable time", Window{Mode: ModeSingleDay, Date: "2026-03-01", StartTime: "9am"}, ErrUnparsableDate},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.w.Normalize()
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestWindowValidate(t *testing.T) {
	t.Run("date-range start after end", func(t *testing.T) {
		w := Window{Mode: ModeDateRange, StartDate: "2026-03-05", EndDate: "2026-03-01"}

		err := w.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStartDateOrder)
		assert.Contains(t, err.Error(), "Start date must be before end date")
	})

	t.Run("date-range same day is valid", func(t *testing.T) {
		w := Window{Mode: ModeDateRange, StartDate: "2026-03-01", EndDate: "2026-03-01"}
		assert.NoError(t, w.Validate())
	})

	t.Run("single-day start time not before end time", func(t *testing.T) {
		for _, times := range [][2]string{{"12:00", "09:00"}, {"10:00", "10:00"}} {
			w := Window{Mode: ModeSingleDay, Date: "2026-03-01", StartTime: times[0], EndTime: times[1]}

			err := w.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStartTimeOrder)
			assert.Contains(t, err.Error(), "Start time must be before end time")
		}
	})

	t.Run("single-day with one time set skips the time check", func(t *testing.T) {
		w := Window{Mode: ModeSingleDay, Date: "2026-03-01", StartTime: "12:00"}
		assert.NoError(t, w.Validate())
	})

	t.Run("date-range ignores time ordering", func(t *testing.T) {
		// Boundary times apply to different days, so 14:00 -> 10:00 is fine.
		w := Window{
			Mode:      ModeDateRange,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-05",
			StartTime: "14:00",
			EndTime:   "10:00",
		}
		assert.NoError(t, w.Validate())
	})
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{Start: localTime(2026, 3, 1, 10, 0), End: localTime(2026, 3, 1, 12, 0)}

	cases := []struct {
		name  string
		other Range
		want  bool
	}{
		{
			"partial overlap",
			Range{Start: localTime(2026, 3, 1, 11, 0), End: localTime(2026, 3, 1, 13, 0)},
			true,
		},
		{
			"containment",
			Range{Start: localTime(2026, 3, 1, 10, 30), End: localTime(2026, 3, 1, 11, 30)},
			true,
		},
		{
			"identical",
			Range{Start: localTime(2026, 3, 1, 10, 0), End: localTime(2026, 3, 1, 12, 0)},
			true,
		},
		{
			"back-to-back after",
			Range{Start: localTime(2026, 3, 1, 12, 0), End: localTime(2026, 3, 1, 14, 0)},
			false,
		},
		{
			"back-to-back before",
			Range{Start: localTime(2026, 3, 1, 8, 0), End: localTime(2026, 3, 1, 10, 0)},
			false,
		},
		{
			"disjoint",
			Range{Start: localTime(2026, 3, 2, 10, 0), End: localTime(2026, 3, 2, 12, 0)},
			false,
		},
		{
			// Strict inequality still fires for an instant inside the range.
			"zero-duration inside",
			Range{Start: localTime(2026, 3, 1, 11, 0), End: localTime(2026, 3, 1, 11, 0)},
			true,
		},
		{
			"zero-duration at the boundary",
			Range{Start: localTime(2026, 3, 1, 12, 0), End: localTime(2026, 3, 1, 12, 0)},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}
