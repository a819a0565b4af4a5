package models

import "time"

// ContractTemplate is a reusable contract body with [占位符] tokens that are
// filled in when a contract is created from the template.
type ContractTemplate struct {
	ID          string    `gorm:"column:id;primaryKey"        json:"id"`
	Name        string    `gorm:"column:name;uniqueIndex"     json:"name"`
	Description string    `gorm:"column:description"          json:"description"`
	Content     string    `gorm:"column:content;type:text"    json:"content"`
	Category    string    `gorm:"column:category"             json:"category"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"column:created_at"           json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at"           json:"updatedAt"`
}

func (ContractTemplate) TableName() string { return "contract_templates" }
