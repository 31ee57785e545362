package model

import "time"

// Vote is a poll. Options are stored as a JSON array.
type Vote struct {
	ID            int64     `json:"id" csv:"id,omitempty"`
	Title         string    `json:"title" csv:"title"`
	Description   string    `json:"description" csv:"description"`
	Options       []string  `json:"options" csv:"options"`
	Club          string    `json:"club" csv:"club"`
	Creator       string    `json:"creator" csv:"creator"`
	EndDate       time.Time `json:"end_date" csv:"end_date"`
	Status        string    `json:"status" csv:"status"`
	AllowMultiple bool      `json:"allow_multiple" csv:"allow_multiple"`
	CreatedDate   time.Time `json:"created_date" csv:"created_date"`
}

// VoteResponse is one user's ballot.
type VoteResponse struct {
	ID              int64     `json:"id" csv:"id,omitempty"`
	VoteID          int64     `json:"vote_id" csv:"vote_id"`
	Username        string    `json:"username" csv:"username"`
	SelectedOptions []string  `json:"selected_options" csv:"selected_options"`
	VotedDate       time.Time `json:"voted_date" csv:"voted_date"`
}

// VoteResult is the tally of a vote.
type VoteResult struct {
	Vote         Vote           `json:"vote"`
	Counts       map[string]int `json:"counts"`
	Participants int            `json:"participants"`
}
