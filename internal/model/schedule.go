package model

import "time"

// ScheduleEntry is a club event on the calendar. Time is free text such as "15:30".
type ScheduleEntry struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Title       string    `json:"title" csv:"title"`
	Description string    `json:"description" csv:"description"`
	Club        string    `json:"club" csv:"club"`
	Date        time.Time `json:"date" csv:"date"`
	Time        string    `json:"time" csv:"time"`
	Location    string    `json:"location" csv:"location"`
	Creator     string    `json:"creator" csv:"creator"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
}
