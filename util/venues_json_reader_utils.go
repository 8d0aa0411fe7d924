package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"localgame-server/models/notification"
	"localgame-server/models/venue"
)

// ReadVenuesFromJSON loads a venue catalog (a JSON array) from disk.
func ReadVenuesFromJSON(filePath string) ([]venue.Venue, error) {
	var venues []venue.Venue
	if err := readJSON(filePath, &venues); err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}
	return venues, nil
}

// ReadNotificationsFromJSON loads the notification inbox from disk.
func ReadNotificationsFromJSON(filePath string) ([]notification.Notification, error) {
	var notifs []notification.Notification
	if err := readJSON(filePath, &notifs); err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return notifs, nil
}

// ReadLiveActivityFromJSON loads cached check-in activity from disk.
func ReadLiveActivityFromJSON(filePath string) ([]venue.LiveActivity, error) {
	var activity []venue.LiveActivity
	if err := readJSON(filePath, &activity); err != nil {
		return nil, fmt.Errorf("failed to load live activity: %w", err)
	}
	return activity, nil
}

func readJSON(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", filePath, err)
	}
	return nil
}

// PrintVenueTable writes one line per venue, the way the explore list shows them.
func PrintVenueTable(w io.Writer, venues []venue.Venue, selectedID string) {
	if len(venues) == 0 {
		fmt.Fprintln(w, "No venues match your filters. Try increasing distance or turning off live only.")
		return
	}
	for _, v := range venues {
		marker := " "
		if v.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-4s %-26s %-12s %-9s %-8s players=%-3d vibe=%d/10 %.1f km\n",
			marker, v.ID, v.Name, v.Area, v.Sport.Label(), v.Status.Label(), v.Players, v.Vibe, v.DistanceKm)
	}
}
