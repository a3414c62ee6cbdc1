package resourcehub

import "github.com/th33k/resourcehub-console/internal/model"

// notificationPayload mirrors a single element of the GET /notification
// response body.
type notificationPayload struct {
	ID       string         `json:"id"`
	Type     string         `json:"notification_type"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Priority string         `json:"priority"`
	Created  string         `json:"created_at"`
	IsRead   bool           `json:"is_read"`
	Sender   *senderPayload `json:"sender"`
}

// senderPayload mirrors the optional sender block of a notification.
type senderPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"profile_picture"`
}

// unreadCountPayload mirrors the GET /unreadCount response body.
type unreadCountPayload struct {
	UnreadCount int `json:"unread_count"`
}

// toModel converts a wire payload into the domain notification type.
func (p notificationPayload) toModel() model.Notification {
	n := model.Notification{
		ID:        p.ID,
		RawType:   p.Type,
		Title:     p.Title,
		Message:   p.Message,
		Priority:  p.Priority,
		CreatedAt: p.Created,
		IsRead:    p.IsRead,
	}
	if p.Sender != nil {
		n.Sender = &model.SenderProfile{
			Username:  p.Sender.Username,
			AvatarURL: p.Sender.Avatar,
		}
	}
	return n
}
