package models

import (
	"time"

	"gorm.io/gorm"
)

// User owns all categories, expenses and incomes. MonthlySalary is the
// income figure the dashboard uses; income rows are not aggregated.
type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Email         string         `json:"email" gorm:"uniqueIndex;size:180;not null"`
	Password      string         `json:"-" gorm:"size:255;not null"`
	MonthlySalary float64        `json:"monthly_salary" gorm:"type:decimal(10,2);default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}
