package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategoryColor is used when no color is submitted.
const DefaultCategoryColor = "#888"

// Category is a per-user spending bucket with a monthly budget ceiling.
// Name uniqueness per user is a convention, not a constraint.
type Category struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Name          string         `json:"name" gorm:"size:120;not null"`
	MonthlyBudget float64        `json:"monthly_budget" gorm:"type:decimal(10,2);not null;default:0"`
	Color         string         `json:"color" gorm:"size:20"` // display color, e.g. #60a5fa
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Category) TableName() string {
	return "categories"
}

// DefaultCategory describes a category seeded for new accounts.
type DefaultCategory struct {
	Name   string
	Budget float64
	Color  string
}

// SeedCategories returns the categories created for the demo account.
func SeedCategories() []DefaultCategory {
	return []DefaultCategory{
		{"Nourriture", 300, "#60a5fa"},
		{"Transport", 120, "#34d399"},
		{"Logement", 800, "#f97316"},
		{"Loisirs", 150, "#f87171"},
		{"Santé", 50, "#a78bfa"},
	}
}

// RegistrationCategories returns the categories created for a fresh signup.
func RegistrationCategories() []DefaultCategory {
	return SeedCategories()[:2]
}
