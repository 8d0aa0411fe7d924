package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"localgame-server/logging"
	"localgame-server/models/notification"
	services "localgame-server/service"
)

const (
	TAB_QUERY_ARG    = "tab"
	UNREAD_QUERY_ARG = "unread"
)

type NotificationsResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	Unread        int                         `json:"unread"`
}

type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *zap.Logger
}

func NewNotificationHandler(notifications *services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logging.Component(logger, "NotificationHandler"),
	}
}

// ListNotifications handles GET /v1/notifications?tab=&unread=
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	tab, err := services.ParseTab(vals.Get(TAB_QUERY_ARG))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	onlyUnread := false
	if s := vals.Get(UNREAD_QUERY_ARG); s != "" {
		if onlyUnread, err = strconv.ParseBool(s); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid argument %s=%q", UNREAD_QUERY_ARG, s))
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, NotificationsResponse{
		Notifications: h.notifications.List(tab, onlyUnread),
		Unread:        h.notifications.UnreadCount(),
	})
}
