package model

import "time"

// Badge is an award given to a user.
type Badge struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Username    string    `json:"username" csv:"username"`
	BadgeName   string    `json:"badge_name" csv:"badge_name"`
	BadgeIcon   string    `json:"badge_icon" csv:"badge_icon"`
	Description string    `json:"description" csv:"description"`
	AwardedDate time.Time `json:"awarded_date" csv:"awarded_date"`
	AwardedBy   string    `json:"awarded_by" csv:"awarded_by"`
}
