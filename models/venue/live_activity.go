package venue

import "time"

const (
	DefaultStatusStaleAfter = 45 * time.Minute
	DefaultBusyThreshold    = 8
)

// LiveActivity is the check-in state cached for a venue.
type LiveActivity struct {
	VenueID     string    `json:"venue_id"`
	Players     int       `json:"players"`
	LastCheckIn time.Time `json:"last_check_in"`
}

// ActivityUpdate computes a venue's next activity from its current one, which is nil
// when nothing is cached.
type ActivityUpdate func(current *LiveActivity) LiveActivity

// DeriveStatus computes a venue status from live check-in data.
// Stale or empty activity is quiet; a crowd at or above busyThreshold is busy.
func DeriveStatus(a LiveActivity, now time.Time, staleAfter time.Duration, busyThreshold int) Status {
	if a.Players <= 0 || a.LastCheckIn.IsZero() || now.Sub(a.LastCheckIn) > staleAfter {
		return StatusQuiet
	}
	if busyThreshold > 0 && a.Players >= busyThreshold {
		return StatusBusy
	}
	return StatusLive
}

// ApplyActivity returns v with players and status taken from live activity.
func ApplyActivity(v Venue, a LiveActivity, now time.Time, staleAfter time.Duration, busyThreshold int) Venue {
	v.Status = DeriveStatus(a, now, staleAfter, busyThreshold)
	if v.Status == StatusQuiet && now.Sub(a.LastCheckIn) > staleAfter {
		v.Players = 0
	} else {
		v.Players = a.Players
	}
	return v
}

// Rebase shifts every check-in by the same offset so the most recent one lands on now.
// Fixture activity recorded in the past stays fresh this way.
func Rebase(activity []LiveActivity, now time.Time) []LiveActivity {
	var latest time.Time
	for _, a := range activity {
		if a.LastCheckIn.After(latest) {
			latest = a.LastCheckIn
		}
	}
	if latest.IsZero() {
		return activity
	}
	offset := now.Sub(latest)
	out := make([]LiveActivity, len(activity))
	for i, a := range activity {
		out[i] = a
		if !a.LastCheckIn.IsZero() {
			out[i].LastCheckIn = a.LastCheckIn.Add(offset)
		}
	}
	return out
}
