package model

import "time"

// Invoice statuses form a closed set.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Customer holds the buyer details captured on an invoice.
type Customer struct {
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:255;not null"`
	Phone   string `json:"phone" gorm:"size:20;not null"`
	Address string `json:"address" gorm:"size:512;not null"`
}

// InvoiceItem is a line item snapshotting product name and price at sale time.
type InvoiceItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index;not null"`
	ProductID   uint    `json:"product" gorm:"not null"`
	ProductName string  `json:"productName" gorm:"size:255;not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Total       float64 `json:"total" gorm:"not null"`
}

// Invoice represents an order with its line items.
type Invoice struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	InvoiceNumber string        `json:"invoiceNumber" gorm:"uniqueIndex;size:8;not null"`
	Customer      Customer      `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Items         []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	TotalAmount   float64       `json:"totalAmount" gorm:"not null"`
	Status        string        `json:"status" gorm:"size:20;default:'pending'"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
