package models

import "time"

// Contract statuses. Transitions are not validated by a state machine;
// any known status may be written by any update call.
const (
	StatusDraft     = "DRAFT"
	StatusPending   = "PENDING"
	StatusReview    = "REVIEW"
	StatusSigned    = "SIGNED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
)

// KnownStatuses lists every accepted contract status.
var KnownStatuses = []string{
	StatusDraft, StatusPending, StatusReview, StatusSigned,
	StatusCompleted, StatusCancelled, StatusExpired,
}

// ValidStatus reports whether s is one of the known contract statuses.
func ValidStatus(s string) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Contract holds one 合同 record. Content is the full text; uploaded PDFs keep
// their file path inside Metadata.
type Contract struct {
	ID         string    `gorm:"column:id;primaryKey"          json:"id"`
	Title      string    `gorm:"column:title"                  json:"title"`
	Content    string    `gorm:"column:content;type:text"      json:"content"`
	Status     string    `gorm:"column:status;default:DRAFT"   json:"status"`
	Type       string    `gorm:"column:type"                   json:"type"`
	Version    int       `gorm:"column:version;default:1"      json:"version"`
	TemplateID *string   `gorm:"column:template_id"            json:"templateId,omitempty"`
	Metadata   JSONMap   `gorm:"column:metadata;type:jsonb"    json:"metadata,omitempty"`
	UserID     string    `gorm:"column:user_id;index"          json:"userId"`
	CreatedAt  time.Time `gorm:"column:created_at"             json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at"             json:"updatedAt"`
}

func (Contract) TableName() string { return "contracts" }
