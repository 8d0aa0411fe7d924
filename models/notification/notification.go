package notification

// Type classifies a notification for the inbox tabs.
type Type string

const (
	TypeMatchConfirm Type = "match_confirm"
	TypeChallenge    Type = "challenge"
	TypeCheckIn      Type = "checkin"
	TypeMessage      Type = "message"
	TypeSystem       Type = "system"
)

// IsRequest reports whether the notification asks the user to act on a match.
func (t Type) IsRequest() bool {
	return t == TypeMatchConfirm || t == TypeChallenge
}

// IsActivity reports whether the notification is passive activity.
func (t Type) IsActivity() bool {
	return t == TypeCheckIn || t == TypeSystem || t == TypeMessage
}

// VenueRef is the short venue reference carried by a notification.
type VenueRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Area string `json:"area"`
}

// CallToAction is the button rendered next to a notification.
type CallToAction struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Variant string `json:"variant,omitempty"`
}

type Notification struct {
	ID     string        `json:"id"`
	Type   Type          `json:"type"`
	Title  string        `json:"title"`
	Body   string        `json:"body"`
	Meta   string        `json:"meta"`
	Venue  *VenueRef     `json:"venue,omitempty"`
	Time   string        `json:"time"`
	Unread bool          `json:"unread,omitempty"`
	CTA    *CallToAction `json:"cta,omitempty"`
}
