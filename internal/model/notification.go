package model

import "time"

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// NotifyAll as a target username fans a notification out to every user.
const NotifyAll = "all"

// Notification is a message for one user.
type Notification struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Username    string    `json:"username" csv:"username"`
	Title       string    `json:"title" csv:"title"`
	Message     string    `json:"message" csv:"message"`
	Type        string    `json:"type" csv:"type"`
	Read        bool      `json:"read" csv:"read"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
}

// NotificationStats summarizes a user's notifications.
type NotificationStats struct {
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	ByType     map[string]int `json:"by_type"`
	RecentWeek int            `json:"recent_week"`
	ReadRate   float64        `json:"read_rate"`
}
