package model

import "time"

// ProductDetail holds publishing details for a catalog item.
type ProductDetail struct {
	Supplier  string `json:"supplier,omitempty" gorm:"size:255"`
	Publisher string `json:"publisher,omitempty" gorm:"size:255"`
	CoverForm string `json:"cover_form,omitempty" gorm:"size:255"`
	Author    string `json:"author,omitempty" gorm:"size:255"`
}

// Product represents a catalog item.
type Product struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:255;not null;index"`
	Price       float64       `json:"price" gorm:"index"`
	Quantity    int           `json:"quantity"`
	Images      []string      `json:"image,omitempty" gorm:"serializer:json"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Detail      ProductDetail `json:"detail_product" gorm:"embedded;embeddedPrefix:detail_"`
	Status      int           `json:"status" gorm:"default:1"`
	CategoryID  *uint         `json:"categories,omitempty" gorm:"index"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
