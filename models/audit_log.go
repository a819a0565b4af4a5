package models

import "time"

// AuditLog is a write-once record of a user-visible action.
type AuditLog struct {
	ID         string    `gorm:"column:id;primaryKey"       json:"id"`
	Action     string    `gorm:"column:action;index"        json:"action"`
	EntityType string    `gorm:"column:entity_type"         json:"entityType"`
	EntityID   string    `gorm:"column:entity_id;index"     json:"entityId"`
	UserID     *string   `gorm:"column:user_id;index"       json:"userId,omitempty"`
	Details    JSONMap   `gorm:"column:details;type:jsonb"  json:"details,omitempty"`
	IPAddress  string    `gorm:"column:ip_address"          json:"ipAddress,omitempty"`
	UserAgent  string    `gorm:"column:user_agent"          json:"userAgent,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at"          json:"createdAt"`
}

func (AuditLog) TableName() string { return "audit_logs" }
