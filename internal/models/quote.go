package models

import (
	"time"

	"github.com/diewo77/backoffice/internal/schema"
)

// Quote / estimate models. Status is an opaque string (draft, sent, accepted,
// rejected); nothing in this layer enforces transitions.
type Quote struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	QuoteNumber string     `gorm:"column:quote_number;not null;index" json:"quote_number"`
	Status      string     `gorm:"not null;default:draft" json:"status"`
	TotalAmount float64    `gorm:"column:total_amount;not null;default:0" json:"total_amount"`
	ValidUntil  *time.Time `gorm:"column:valid_until" json:"valid_until"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ProjectID   string     `gorm:"column:project_id;not null" json:"project_id"`

	Project    *Project    `gorm:"foreignKey:ProjectID" json:"-"`
	QuoteItems []QuoteItem `gorm:"foreignKey:QuoteID" json:"-"`
	Receipts   []Receipt   `gorm:"foreignKey:QuoteID" json:"-"`
}

func (Quote) TableName() string { return "quotes" }

var QuoteDescriptor = schema.Descriptor{
	Name:     "quotes",
	Singular: "quote",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "quote_number", Type: schema.Text},
		{Name: "status", Type: schema.Text},
		{Name: "total_amount", Type: schema.Float},
		{Name: "valid_until", Type: schema.DateTime, Nullable: true},
		{Name: "created_at", Type: schema.DateTime},
		{Name: "project_id", Type: schema.Text},
	},
	Relations: []string{"project", "quoteitems", "receipts"},
}

type QuoteItem struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price;not null;default:0" json:"unit_price"`
	QuoteID     string  `gorm:"column:quote_id;not null" json:"quote_id"`

	Quote      *Quote      `gorm:"foreignKey:QuoteID" json:"-"`
	Timesheets []Timesheet `gorm:"foreignKey:QuoteItemID" json:"-"`
}

func (QuoteItem) TableName() string { return "quoteitems" }

var QuoteItemDescriptor = schema.Descriptor{
	Name:     "quoteitems",
	Singular: "quoteitem",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "description", Type: schema.Text, Nullable: true},
		{Name: "quantity", Type: schema.Float},
		{Name: "unit_price", Type: schema.Float},
		{Name: "quote_id", Type: schema.Text},
	},
	Relations: []string{"quote", "timesheets"},
}
