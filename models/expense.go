package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense records a single spend against a category. The amount sign is not
// constrained so refunds can be entered as negatives. The category must
// belong to the same user; the handlers enforce this at write time.
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	CategoryID  uint           `json:"category_id" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"size:250;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	ExpenseTime time.Time      `json:"datetime" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Expense) TableName() string {
	return "expenses"
}
