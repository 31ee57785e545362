package model

import "time"

// Club is a row of the clubs table. Name is unique.
type Club struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Name        string    `json:"name" csv:"name"`
	Icon        string    `json:"icon" csv:"icon"`
	Description string    `json:"description" csv:"description"`
	President   string    `json:"president" csv:"president"`
	MaxMembers  int       `json:"max_members" csv:"max_members"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
	MeetLink    string    `json:"meet_link,omitempty" csv:"meet_link"`
}
