package models

import (
	"strings"
	"time"
)

// User represents a registered customer.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)"`
	Profile   *Profile  `json:"profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the customer's full name, falling back to the
// username when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Profile holds optional customer details.
type Profile struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Phone     string     `json:"phone" gorm:"type:varchar(20)"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender" gorm:"type:varchar(10)" validate:"omitempty,oneof=masculino femenino"`
}

// Address is one entry in a user's address book.
type Address struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Name           string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Phone          string    `json:"phone" gorm:"type:varchar(20)"`
	Primary        bool      `json:"primary" gorm:"default:false"`
	Street         string    `json:"street" gorm:"type:varchar(200)" validate:"required"`
	ExteriorNumber string    `json:"exterior_number" gorm:"type:varchar(20)"`
	InteriorNumber string    `json:"interior_number" gorm:"type:varchar(20)"`
	Neighborhood   string    `json:"neighborhood" gorm:"type:varchar(200)"`
	City           string    `json:"city" gorm:"type:varchar(100)" validate:"required"`
	State          string    `json:"state" gorm:"type:varchar(100)"`
	PostalCode     string    `json:"postal_code" gorm:"type:varchar(10)"`
	Country        string    `json:"country" gorm:"type:varchar(100);default:México"`
	References     string    `json:"references"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullAddress returns the address formatted as a single shipping line.
func (a *Address) FullAddress() string {
	var parts []string
	if a.Street != "" {
		line := a.Street
		if a.ExteriorNumber != "" {
			line += " #" + a.ExteriorNumber
		}
		if a.InteriorNumber != "" {
			line += " Int. " + a.InteriorNumber
		}
		parts = append(parts, line)
	}
	if a.Neighborhood != "" {
		parts = append(parts, "Col. "+a.Neighborhood)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	if a.PostalCode != "" {
		parts = append(parts, "CP "+a.PostalCode)
	}
	return strings.Join(parts, ", ")
}
