package entity

import "time"

// Tipos de actividad.
const (
	ActivityTypeCall         = "call"
	ActivityTypeEmail        = "email"
	ActivityTypeMeeting      = "meeting"
	ActivityTypeNote         = "note"
	ActivityTypeStatusChange = "status_change"
	ActivityTypeOther        = "other"
)

// Activity entrada del historial de un lead.
type Activity struct {
	ID          string
	LeadID      string
	UserID      string
	Type        string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidActivityType indica si t es un tipo reconocido.
func IsValidActivityType(t string) bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting, ActivityTypeNote,
		ActivityTypeStatusChange, ActivityTypeOther:
		return true
	}
	return false
}
