package entity

import "time"

// Canales de adquisición del lead.
const (
	LeadSourceWebsite     = "website"
	LeadSourceReferral    = "referral"
	LeadSourceSocialMedia = "social_media"
	LeadSourceEmail       = "email"
	LeadSourcePhone       = "phone"
	LeadSourceEvent       = "event"
	LeadSourceAdvertising = "advertising"
	LeadSourceOther       = "other"
)

// Lead contacto de ventas aún no convertido. Status es un valor del catálogo de pipeline.
type Lead struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Source    string
	Status    string
	Message   string
	MediaURLs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidLeadSource indica si s es un canal reconocido.
func IsValidLeadSource(s string) bool {
	switch s {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceSocialMedia, LeadSourceEmail,
		LeadSourcePhone, LeadSourceEvent, LeadSourceAdvertising, LeadSourceOther:
		return true
	}
	return false
}
