package services

import (
	"errors"
	"fmt"
	"strings"

	"localgame-server/models/notification"
)

// Tab is an inbox view.
type Tab string

const (
	TabAll      Tab = "all"
	TabRequests Tab = "requests"
	TabActivity Tab = "activity"
)

var ErrUnknownTab = errors.New("unknown notification tab")

func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TabAll:
		return TabAll, nil
	case TabRequests, TabActivity:
		return t, nil
	}
	return TabAll, fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// NotificationService filters the notification inbox.
type NotificationService struct {
	notifications []notification.Notification
}

func NewNotificationService(notifications []notification.Notification) *NotificationService {
	own := make([]notification.Notification, len(notifications))
	copy(own, notifications)
	return &NotificationService{notifications: own}
}

// List returns the notifications shown under tab, in inbox order.
func (s *NotificationService) List(tab Tab, onlyUnread bool) []notification.Notification {
	out := make([]notification.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if onlyUnread && !n.Unread {
			continue
		}
		if tab == TabRequests && !n.Type.IsRequest() {
			continue
		}
		if tab == TabActivity && !n.Type.IsActivity() {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (s *NotificationService) UnreadCount() int {
	count := 0
	for _, n := range s.notifications {
		if n.Unread {
			count++
		}
	}
	return count
}
