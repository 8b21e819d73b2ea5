package models

import (
	"time"

	"github.com/diewo77/backoffice/internal/schema"
)

type Project struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description *string   `json:"description"`
	Status      string    `gorm:"not null;default:active" json:"status"`
	StartDate   time.Time `gorm:"column:start_date;not null;default:CURRENT_TIMESTAMP" json:"start_date"`
	CompanyID   *string   `gorm:"column:company_id" json:"company_id"`

	Company  *Company        `gorm:"foreignKey:CompanyID" json:"-"`
	Quotes   []Quote         `gorm:"foreignKey:ProjectID" json:"-"`
	Contacts []ContactPerson `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string { return "projects" }

var ProjectDescriptor = schema.Descriptor{
	Name:     "projects",
	Singular: "project",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "description", Type: schema.Text, Nullable: true},
		{Name: "status", Type: schema.Text},
		{Name: "start_date", Type: schema.DateTime},
		{Name: "company_id", Type: schema.Text, Nullable: true},
	},
	Relations: []string{"company", "quotes", "contacts"},
}
