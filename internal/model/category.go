package model

import "time"

// Category groups products; ParentID links an optional parent category.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	ParentID    *uint     `json:"sub_category,omitempty" gorm:"index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
