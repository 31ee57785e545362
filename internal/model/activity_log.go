package model

import "time"

// ActivityLog is an audit entry for a store mutation or a user action.
// Entries are best-effort: losing one never fails the action it describes.
type ActivityLog struct {
	ID              int64     `json:"id" csv:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Timestamp       time.Time `json:"timestamp" csv:"timestamp" gorm:"index;not null"`
	Username        string    `json:"username" csv:"username" gorm:"size:100;index"`
	ActivityType    string    `json:"activity_type" csv:"activity_type" gorm:"size:50;index"`
	Description     string    `json:"description" csv:"description" gorm:"type:text"`
	TargetResource  string    `json:"target_resource" csv:"target_resource" gorm:"size:100"`
	ActionResult    string    `json:"action_result" csv:"action_result" gorm:"size:20"`
	ErrorMessage    string    `json:"error_message,omitempty" csv:"error_message" gorm:"type:text"`
	RecordsAffected int       `json:"records_affected" csv:"records_affected"`
}

// TableName keeps the SQL table aligned with the CSV table name.
func (ActivityLog) TableName() string {
	return "logs"
}
