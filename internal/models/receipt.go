package models

import (
	"time"

	"github.com/diewo77/backoffice/internal/schema"
)

type Receipt struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	ReceiptNumber string    `gorm:"column:receipt_number;not null" json:"receipt_number"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentDate   time.Time `gorm:"column:payment_date;not null;default:CURRENT_TIMESTAMP" json:"payment_date"`
	Note          *string   `json:"note"`
	QuoteID       string    `gorm:"column:quote_id;not null" json:"quote_id"`

	Quote *Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

func (Receipt) TableName() string { return "receipts" }

var ReceiptDescriptor = schema.Descriptor{
	Name:     "receipts",
	Singular: "receipt",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "receipt_number", Type: schema.Text},
		{Name: "amount", Type: schema.Float},
		{Name: "payment_date", Type: schema.DateTime},
		{Name: "note", Type: schema.Text, Nullable: true},
		{Name: "quote_id", Type: schema.Text},
	},
	Relations: []string{"quote"},
}
