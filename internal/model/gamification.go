package model

// UserPoints is a user's standing in the activity ranking.
type UserPoints struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Club          string `json:"club"`
	Points        int    `json:"points"`
	Level         int    `json:"level"`
	PointsToNext  int    `json:"points_to_next"`
	Attendance    int    `json:"attendance"`
	Submissions   int    `json:"submissions"`
	Posts         int    `json:"posts"`
	QuizResponses int    `json:"quiz_responses"`
	BadgeCount    int    `json:"badge_count"`
}
