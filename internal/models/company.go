package models

import "github.com/diewo77/backoffice/internal/schema"

// Company is a client organisation, the root of the project/contact hierarchy.
type Company struct {
	ID      string  `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null;index" json:"name"`
	TaxID   *string `gorm:"column:tax_id;index" json:"tax_id"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Projects []Project       `gorm:"foreignKey:CompanyID" json:"-"`
	Contacts []ContactPerson `gorm:"foreignKey:CompanyID" json:"-"`
}

// Historical table name; the original schema used the regular plural.
func (Company) TableName() string { return "companys" }

var CompanyDescriptor = schema.Descriptor{
	Name:     "companys",
	Singular: "company",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "tax_id", Type: schema.Text, Nullable: true},
		{Name: "email", Type: schema.Text, Nullable: true},
		{Name: "phone", Type: schema.Text, Nullable: true},
		{Name: "address", Type: schema.Text, Nullable: true},
	},
	Relations: []string{"projects", "contacts"},
}
