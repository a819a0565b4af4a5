package models

import "time"

// User roles. Any other value is rejected on write.
const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

// User is an account record. Users are never hard-deleted.
type User struct {
	ID        string    `gorm:"column:id;primaryKey"       json:"id"`
	Name      string    `gorm:"column:name"                json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex"   json:"email"`
	Password  string    `gorm:"column:password"            json:"-"`
	Company   string    `gorm:"column:company"             json:"company"`
	Role      string    `gorm:"column:role;default:USER"   json:"role"`
	CreatedAt time.Time `gorm:"column:created_at"          json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at"          json:"updatedAt"`
}

func (User) TableName() string { return "users" }
