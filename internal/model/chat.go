package model

import "time"

// ChatMessage is a row of chat_logs. Deleted messages are kept with Deleted set.
type ChatMessage struct {
	ID        int64     `json:"id" csv:"id,omitempty"`
	Username  string    `json:"username" csv:"username"`
	Club      string    `json:"club" csv:"club"`
	Message   string    `json:"message" csv:"message"`
	Timestamp time.Time `json:"timestamp" csv:"timestamp"`
	Deleted   bool      `json:"deleted" csv:"deleted"`
}
