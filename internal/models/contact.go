package models

import "github.com/diewo77/backoffice/internal/schema"

// ContactPerson can hang off a company, a project, both or neither.
// Birthday stays free text: the legacy data holds values like "early June".
type ContactPerson struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Birthday  *string `json:"birthday"`
	ProjectID *string `gorm:"column:project_id" json:"project_id"`
	CompanyID *string `gorm:"column:company_id" json:"company_id"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (ContactPerson) TableName() string { return "contact_persons" }

var ContactPersonDescriptor = schema.Descriptor{
	Name:     "contact_persons",
	Singular: "contact_person",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "email", Type: schema.Text, Nullable: true},
		{Name: "phone", Type: schema.Text, Nullable: true},
		{Name: "role", Type: schema.Text, Nullable: true},
		{Name: "birthday", Type: schema.Text, Nullable: true},
		{Name: "project_id", Type: schema.Text, Nullable: true},
		{Name: "company_id", Type: schema.Text, Nullable: true},
	},
	Relations: []string{"project", "company"},
}
