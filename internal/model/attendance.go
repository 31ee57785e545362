package model

import "time"

// AttendanceStatus is the outcome recorded for a member on a day.
type AttendanceStatus string

const (
	AttendancePresent    AttendanceStatus = "출석"
	AttendanceLate       AttendanceStatus = "지각"
	AttendanceAbsent     AttendanceStatus = "결석"
	AttendanceEarlyLeave AttendanceStatus = "조퇴"
)

// Valid reports whether s is a known status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceEarlyLeave:
		return true
	}
	return false
}

// Attendance is one member's record for one club meeting day. There is at
// most one row per (username, club, date).
type Attendance struct {
	ID         int64            `json:"id" csv:"id,omitempty"`
	Username   string           `json:"username" csv:"username"`
	Club       string           `json:"club" csv:"club"`
	Date       time.Time        `json:"date" csv:"date"`
	Status     AttendanceStatus `json:"status" csv:"status"`
	Note       string           `json:"note,omitempty" csv:"note"`
	RecordedBy string           `json:"recorded_by" csv:"recorded_by"`
	Timestamp  time.Time        `json:"timestamp" csv:"timestamp"`
}

var attendanceAliases = map[string]AttendanceStatus{
	"present":     AttendancePresent,
	"late":        AttendanceLate,
	"absent":      AttendanceAbsent,
	"early_leave": AttendanceEarlyLeave,
}

// ParseAttendanceStatus accepts a stored label or its English name.
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	if st := AttendanceStatus(s); st.Valid() {
		return st, true
	}
	st, ok := attendanceAliases[s]
	return st, ok
}
