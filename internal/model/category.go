package model

import "time"

// Category groups tasks by area (work, study, life, etc.).
type Category struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex" json:"name"`
	Icon       string    `gorm:"default:📁" json:"icon"`
	Color      string    `gorm:"default:#C7CEEA" json:"color"`
	OrderIndex int       `json:"order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
