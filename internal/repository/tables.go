package repository

import (
	"clubportal/internal/csvstore"
	"clubportal/internal/model"
)

// Tables groups the typed accessors of the feature tables.
type Tables struct {
	Posts         *Table[model.Post]
	Comments      *Table[model.Comment]
	Chat          *Table[model.ChatMessage]
	Assignments   *Table[model.Assignment]
	Submissions   *Table[model.Submission]
	Attendance    *Table[model.Attendance]
	Schedule      *Table[model.ScheduleEntry]
	Votes         *Table[model.Vote]
	VoteResponses *Table[model.VoteResponse]
	Badges        *Table[model.Badge]
	Notifications *Table[model.Notification]
	Quizzes       *Table[model.Quiz]
	QuizResponses *Table[model.QuizResponse]
	Portfolio     *Table[model.PortfolioItem]
	Logs          *Table[model.ActivityLog]
}

// NewTables builds every accessor over store.
func NewTables(store *csvstore.Store) *Tables {
	return &Tables{
		Posts:         NewTable[model.Post](store, "posts"),
		Comments:      NewTable[model.Comment](store, "comments"),
		Chat:          NewTable[model.ChatMessage](store, "chat_logs"),
		Assignments:   NewTable[model.Assignment](store, "assignments"),
		Submissions:   NewTable[model.Submission](store, "submissions"),
		Attendance:    NewTable[model.Attendance](store, "attendance"),
		Schedule:      NewTable[model.ScheduleEntry](store, "schedule"),
		Votes:         NewTable[model.Vote](store, "votes"),
		VoteResponses: NewTable[model.VoteResponse](store, "vote_responses"),
		Badges:        NewTable[model.Badge](store, "badges"),
		Notifications: NewTable[model.Notification](store, "notifications"),
		Quizzes:       NewTable[model.Quiz](store, "quizzes"),
		QuizResponses: NewTable[model.QuizResponse](store, "quiz_responses"),
		Portfolio:     NewTable[model.PortfolioItem](store, "portfolio"),
		Logs:          NewTable[model.ActivityLog](store, "logs"),
	}
}
