package booking

// CheckConflictsRequest is a candidate or in-edit booking to test against
// existing bookings. It is never persisted. ExcludeBookingID carries the
// booking's own id when re-checking an edit so it does not conflict with
// itself.
type CheckConflictsRequest struct {
	AssetID          string
	KitID            string
	Window           Window
	ExcludeBookingID string
}

// Conflict describes one existing live booking that overlaps the request.
// Range is the other booking's own normalized span, not the intersection,
// so the operator sees when the resource is actually taken.
type Conflict struct {
	BookingID       string
	AssetID         string
	KitID           string
	Range           Range
	RequestedByID   string
	RequestedByName string
	AssignedToID    string
	AssignedToName  string
	Status          Status
}

// CheckConflictsResponse is the advisory conflict report. Conflicts never
// block persistence; the submitting operator decides. IsBookable is vetoed
// only by resource-level exceptions (e.g. a retired asset), never by
// scheduling conflicts.
type CheckConflictsResponse struct {
	HasConflicts     bool       `json:"has_conflicts"`
	Conflicts        []Conflict `json:"conflicts"`
	IsBookable       bool       `json:"is_bookable"`
	UnbookableReason string     `json:"unbookable_reason,omitempty"`
}

// CheckConflicts tests the request against a point-in-time snapshot of
// existing bookings. It is a pure computation: no I/O, no mutation, each
// call independent. Two racing operators can both pass this check against
// stale snapshots and both persist; last write wins and the next refresh
// surfaces the double-booking.
//
// Only bookings on the same resource with a live status are considered, in
// the order the snapshot supplies them. Existing records whose window no
// longer normalizes are skipped; they cannot hold a span.
func CheckConflicts(req CheckConflictsRequest, existing []*Booking) (CheckConflictsResponse, error) {
	if (req.AssetID == "") == (req.KitID == "") {
		return CheckConflictsResponse{}, ErrResourceRequired
	}

	reqRange, err := req.Window.Normalize()
	if err != nil {
		return CheckConflictsResponse{}, err
	}

	var conflicts []Conflict
	for _, b := range existing {
		if req.ExcludeBookingID != "" && b.ID == req.ExcludeBookingID {
			continue
		}
		if !b.Status.IsLive() {
			continue
		}
		if !sameResource(req, b) {
			continue
		}

		bRange, err := b.Window.Normalize()
		if err != nil {
			continue
		}

		if reqRange.Overlaps(bRange) {
			conflicts = append(conflicts, Conflict{
				BookingID:       b.ID,
				AssetID:         b.AssetID,
				KitID:           b.KitID,
				Range:           bRange,
				RequestedByID:   b.RequestedByID,
				RequestedByName: b.RequestedByName,
				AssignedToID:    b.AssignedToID,
				AssignedToName:  b.AssignedToName,
				Status:          b.Status,
			})
		}
	}

	return CheckConflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		IsBookable:   true,
	}, nil
}

// sameResource reports whether the existing booking targets the same asset
// or kit as the request. Bookings on different resources never conflict.
func sameResource(req CheckConflictsRequest, b *Booking) bool {
	if req.AssetID != "" {
		return b.AssetID == req.AssetID
	}
	return b.KitID == req.KitID
}
