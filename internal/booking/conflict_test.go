package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleDay(date, startTime, endTime string) Window {
	return Window{Mode: ModeSingleDay, Date: date, StartTime: startTime, EndTime: endTime}
}

func dateRange(startDate, endDate string) Window {
	return Window{Mode: ModeDateRange, StartDate: startDate, EndDate: endDate}
}

func existingBooking(id, assetID string, status Status, w Window) *Booking {
	return &Booking{
		ID:            id,
		AssetID:       assetID,
		RequestedByID: "user-1",
		AssignedToID:  "user-1",
		Window:        w,
		Status:        status,
	}
}

func TestCheckConflicts(t *testing.T) {
	t.Run("requires exactly one resource", func(t *testing.T) {
		_, err := CheckConflicts(CheckConflictsRequest{Window: singleDay("2025-06-01", "", "")}, nil)
		assert.ErrorIs(t, err, ErrResourceRequired)

		_, err = CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			KitID:   "kit-1",
			Window:  singleDay("2025-06-01", "", ""),
		}, nil)
		assert.ErrorIs(t, err, ErrResourceRequired)
	})

	t.Run("propagates an unresolvable request window", func(t *testing.T) {
		_, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  Window{Mode: ModeSingleDay},
		}, nil)
		assert.ErrorIs(t, err, ErrDateRequired)
	})

	t.Run("overlapping date-range booking is reported once", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-1", "asset-1", StatusApproved, dateRange("2025-06-01", "2025-06-05")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  dateRange("2025-06-03", "2025-06-04"),
		}, existing)
		require.NoError(t, err)

		assert.True(t, resp.HasConflicts)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "b-1", resp.Conflicts[0].BookingID)
		assert.True(t, resp.IsBookable, "conflicts alone never veto bookability")
	})

	t.Run("disjoint date ranges do not conflict", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-1", "asset-1", StatusApproved, dateRange("2025-06-01", "2025-06-05")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  dateRange("2025-06-06", "2025-06-10"),
		}, existing)
		require.NoError(t, err)

		assert.False(t, resp.HasConflicts)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("shared whole day in date-range mode conflicts", func(t *testing.T) {
		// Both windows cover all of June 5th under the 00:00/23:59 defaults.
		existing := []*Booking{
			existingBooking("b-1", "asset-1", StatusApproved, dateRange("2025-06-01", "2025-06-05")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  dateRange("2025-06-05", "2025-06-10"),
		}, existing)
		require.NoError(t, err)

		assert.True(t, resp.HasConflicts)
	})

	t.Run("back-to-back single-day times do not conflict", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-1", "asset-1", StatusPending, singleDay("2025-06-01", "09:00", "12:00")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "12:00", "14:00"),
		}, existing)
		require.NoError(t, err)

		assert.False(t, resp.HasConflicts)
	})

	t.Run("partial single-day overlap conflicts", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-1", "asset-1", StatusPending, singleDay("2025-06-01", "09:00", "12:00")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "11:00", "13:00"),
		}, existing)
		require.NoError(t, err)

		assert.True(t, resp.HasConflicts)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "b-1", resp.Conflicts[0].BookingID)
	})

	t.Run("bookings on other resources are ignored", func(t *testing.T) {
		w := singleDay("2025-06-01", "09:00", "12:00")
		existing := []*Booking{
			existingBooking("b-other", "asset-2", StatusApproved, w),
			{ID: "b-kit", KitID: "kit-1", Status: StatusApproved, Window: w},
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  w,
		}, existing)
		require.NoError(t, err)

		assert.False(t, resp.HasConflicts)
	})

	t.Run("kit requests only see kit bookings", func(t *testing.T) {
		w := singleDay("2025-06-01", "09:00", "12:00")
		existing := []*Booking{
			existingBooking("b-asset", "asset-1", StatusApproved, w),
			{ID: "b-kit", KitID: "kit-1", Status: StatusApproved, Window: w},
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			KitID:  "kit-1",
			Window: w,
		}, existing)
		require.NoError(t, err)

		assert.True(t, resp.HasConflicts)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "b-kit", resp.Conflicts[0].BookingID)
	})

	t.Run("terminal statuses never conflict", func(t *testing.T) {
		w := singleDay("2025-06-01", "09:00", "12:00")

		for _, status := range []Status{StatusCompleted, StatusCancelled, StatusDeclined, StatusOverdue} {
			existing := []*Booking{existingBooking("b-1", "asset-1", status, w)}

			resp, err := CheckConflicts(CheckConflictsRequest{
				AssetID: "asset-1",
				Window:  w,
			}, existing)
			require.NoError(t, err)

			assert.False(t, resp.HasConflicts, "status %s must not conflict", status)
		}
	})

	t.Run("live statuses all conflict", func(t *testing.T) {
		w := singleDay("2025-06-01", "09:00", "12:00")

		for _, status := range []Status{StatusPending, StatusApproved, StatusActive} {
			existing := []*Booking{existingBooking("b-1", "asset-1", status, w)}

			resp, err := CheckConflicts(CheckConflictsRequest{
				AssetID: "asset-1",
				Window:  w,
			}, existing)
			require.NoError(t, err)

			assert.True(t, resp.HasConflicts, "status %s must conflict", status)
		}
	})

	t.Run("editing a booking excludes itself", func(t *testing.T) {
		w := singleDay("2025-06-01", "09:00", "12:00")
		existing := []*Booking{existingBooking("b-1", "asset-1", StatusApproved, w)}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID:          "asset-1",
			Window:           w,
			ExcludeBookingID: "b-1",
		}, existing)
		require.NoError(t, err)

		assert.False(t, resp.HasConflicts)
	})

	t.Run("existing bookings with broken windows are skipped", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-broken", "asset-1", StatusApproved, Window{Mode: ModeSingleDay}),
			existingBooking("b-ok", "asset-1", StatusApproved, singleDay("2025-06-01", "09:00", "12:00")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "10:00", "11:00"),
		}, existing)
		require.NoError(t, err)

		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "b-ok", resp.Conflicts[0].BookingID)
	})

	t.Run("multiple conflicts keep snapshot order", func(t *testing.T) {
		existing := []*Booking{
			existingBooking("b-2", "asset-1", StatusPending, singleDay("2025-06-01", "10:00", "11:00")),
			existingBooking("b-1", "asset-1", StatusApproved, singleDay("2025-06-01", "09:00", "10:30")),
			existingBooking("b-3", "asset-1", StatusActive, singleDay("2025-06-01", "13:00", "14:00")),
		}

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "09:30", "12:00"),
		}, existing)
		require.NoError(t, err)

		require.Len(t, resp.Conflicts, 2)
		assert.Equal(t, "b-2", resp.Conflicts[0].BookingID)
		assert.Equal(t, "b-1", resp.Conflicts[1].BookingID)
	})

	t.Run("conflict carries the other booking's own span", func(t *testing.T) {
		other := existingBooking("b-1", "asset-1", StatusApproved, singleDay("2025-06-01", "09:00", "12:00"))

		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "11:00", "15:00"),
		}, []*Booking{other})
		require.NoError(t, err)

		require.Len(t, resp.Conflicts, 1)
		want, err := other.Window.Normalize()
		require.NoError(t, err)
		assert.Equal(t, want, resp.Conflicts[0].Range)
	})

	t.Run("no conflicts yields a bookable empty report", func(t *testing.T) {
		resp, err := CheckConflicts(CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2025-06-01", "09:00", "12:00"),
		}, nil)
		require.NoError(t, err)

		assert.False(t, resp.HasConflicts)
		assert.Empty(t, resp.Conflicts)
		assert.True(t, resp.IsBookable)
		assert.Empty(t, resp.UnbookableReason)
	})
}
