package models

import (
	"time"

	"github.com/diewo77/backoffice/internal/schema"
)

// Timesheet links hours to an employee and, optionally, to the quote item the
// work was billed against. The relation key kept the original's plural
// spelling ("quoteitems") so existing clients stay compatible.
type Timesheet struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	HoursLogged float64   `gorm:"column:hours_logged;not null" json:"hours_logged"`
	DateLogged  time.Time `gorm:"column:date_logged;not null;default:CURRENT_TIMESTAMP" json:"date_logged"`
	Description *string   `json:"description"`
	EmployeeID  string    `gorm:"column:employee_id;not null" json:"employee_id"`
	QuoteItemID *string   `gorm:"column:quoteitem_id" json:"quoteitem_id"`

	Employee  *Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	QuoteItem *QuoteItem `gorm:"foreignKey:QuoteItemID" json:"-"`
}

func (Timesheet) TableName() string { return "timesheets" }

var TimesheetDescriptor = schema.Descriptor{
	Name:     "timesheets",
	Singular: "timesheet",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "hours_logged", Type: schema.Float},
		{Name: "date_logged", Type: schema.DateTime},
		{Name: "description", Type: schema.Text, Nullable: true},
		{Name: "employee_id", Type: schema.Text},
		{Name: "quoteitem_id", Type: schema.Text, Nullable: true},
	},
	Relations: []string{"employee", "quoteitems"},
}
