package models

import "github.com/diewo77/backoffice/internal/schema"

type Employee struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null;index" json:"name"`
	Email      *string `gorm:"index" json:"email"`
	Role       *string `gorm:"default:staff" json:"role"`
	HourlyRate float64 `gorm:"column:hourly_rate;not null;default:0" json:"hourly_rate"`
	IsActive   bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Timesheets []Timesheet `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string { return "employees" }

var EmployeeDescriptor = schema.Descriptor{
	Name:     "employees",
	Singular: "employee",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "email", Type: schema.Text, Nullable: true},
		{Name: "role", Type: schema.Text, Nullable: true},
		{Name: "hourly_rate", Type: schema.Float},
		{Name: "is_active", Type: schema.Boolean},
	},
	Relations: []string{"timesheets"},
}
