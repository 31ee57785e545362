package csvstore

import (
	"regexp"
	"strings"
)

// Kind is the storage type of a column. Cells are always text on disk; the
// kind decides how a cell is parsed on load and formatted on write.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	default:
		return "string"
	}
}

// Schema declares the expected layout of a table. The header row on disk stays
// authoritative: declared columns missing from a file are added, unknown
// columns already in a file are kept.
type Schema struct {
	Name    string
	Columns []string
	// CreatedColumn is stamped with the current time on insert when empty.
	CreatedColumn string
	// NoAudit disables activity events for the table.
	NoAudit bool
}

// HasID reports whether rows of the table carry an integer id column.
func (s Schema) HasID() bool {
	for _, c := range s.Columns {
		if c == ColumnID {
			return true
		}
	}
	return false
}

const (
	// ColumnID is the auto-increment key column.
	ColumnID = "id"

	sequencesTable = "sequences"
)

var columnKinds = map[string]Kind{
	"id":               KindInt,
	"likes":            KindInt,
	"comments":         KindInt,
	"max_members":      KindInt,
	"score":            KindInt,
	"total_questions":  KindInt,
	"time_limit":       KindInt,
	"attempts_allowed": KindInt,
	"records_affected": KindInt,
	"last_id":          KindInt,
	"time_taken":       KindFloat,
	"deleted":          KindBool,
	"read":             KindBool,
	"allow_multiple":   KindBool,
	"created_date":     KindDateTime,
	"submitted_date":   KindDateTime,
	"awarded_date":     KindDateTime,
	"timestamp":        KindDateTime,
	"due_date":         KindDateTime,
	"end_date":         KindDateTime,
	"voted_date":       KindDateTime,
	"completed_date":   KindDateTime,
	"date":             KindDate,
}

// KindOf returns the kind of a column by name. Columns ending in _id are
// integer references; anything unknown is text.
func KindOf(column string) Kind {
	if k, ok := columnKinds[column]; ok {
		return k
	}
	if strings.HasSuffix(column, "_id") {
		return KindInt
	}
	return KindString
}

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// DefaultSchemas are the tables of the club portal.
var DefaultSchemas = []Schema{
	{Name: "users", Columns: []string{"username", "password", "name", "role", "club_name", "club_role", "created_date"}, CreatedColumn: "created_date"},
	{Name: "clubs", Columns: []string{"id", "name", "icon", "description", "president", "max_members", "created_date", "meet_link"}, CreatedColumn: "created_date"},
	{Name: "posts", Columns: []string{"id", "title", "content", "author", "club", "created_date", "likes", "comments", "image_path", "image_data", "tags", "post_type"}, CreatedColumn: "created_date"},
	{Name: "comments", Columns: []string{"id", "post_id", "author", "content", "created_date"}, CreatedColumn: "created_date"},
	{Name: "chat_logs", Columns: []string{"id", "username", "club", "message", "timestamp", "deleted"}, CreatedColumn: "timestamp"},
	{Name: "assignments", Columns: []string{"id", "title", "description", "club", "creator", "due_date", "status", "created_date"}, CreatedColumn: "created_date"},
	{Name: "submissions", Columns: []string{"id", "assignment_id", "username", "content", "file_path", "submitted_date", "grade", "feedback"}, CreatedColumn: "submitted_date"},
	{Name: "attendance", Columns: []string{"id", "username", "club", "date", "status", "note", "recorded_by", "timestamp"}, CreatedColumn: "timestamp"},
	{Name: "schedule", Columns: []string{"id", "title", "description", "club", "date", "time", "location", "creator", "created_date"}, CreatedColumn: "created_date"},
	{Name: "votes", Columns: []string{"id", "title", "description", "options", "club", "creator", "end_date", "status", "allow_multiple", "created_date"}, CreatedColumn: "created_date"},
	{Name: "vote_responses", Columns: []string{"id", "vote_id", "username", "selected_options", "voted_date"}, CreatedColumn: "voted_date"},
	{Name: "badges", Columns: []string{"id", "username", "badge_name", "badge_icon", "description", "awarded_date", "awarded_by"}, CreatedColumn: "awarded_date"},
	{Name: "notifications", Columns: []string{"id", "username", "title", "message", "type", "read", "created_date"}, CreatedColumn: "created_date"},
	{Name: "quizzes", Columns: []string{"id", "title", "description", "club", "creator", "questions", "time_limit", "attempts_allowed", "status", "created_date"}, CreatedColumn: "created_date"},
	{Name: "quiz_responses", Columns: []string{"id", "quiz_id", "username", "answers", "score", "total_questions", "completed_date", "time_taken"}, CreatedColumn: "completed_date"},
	{Name: "portfolio", Columns: []string{"id", "username", "title", "category", "description", "technologies", "status", "project_url", "tags", "image_path", "created_date"}, CreatedColumn: "created_date"},
	{Name: "logs", Columns: []string{"id", "timestamp", "username", "activity_type", "description", "target_resource", "action_result", "error_message", "records_affected"}, CreatedColumn: "timestamp", NoAudit: true},
	{Name: sequencesTable, Columns: []string{"table", "last_id"}, NoAudit: true},
}
