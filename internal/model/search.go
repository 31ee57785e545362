package model

import "time"

// SearchResult is one match of an internal search. ID is the record id, or
// the username for users.
type SearchResult struct {
	Type    string    `json:"type"`
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Snippet string    `json:"content"`
	Author  string    `json:"author"`
	Club    string    `json:"club"`
	Date    time.Time `json:"date"`
}
