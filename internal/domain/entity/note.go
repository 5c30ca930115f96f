package entity

import "time"

// Note nota libre sobre un lead.
type Note struct {
	ID        string
	LeadID    string
	AuthorID  string
	Author    string // nombre visible del autor
	Content   string
	IsPrivate bool
	MediaURLs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
