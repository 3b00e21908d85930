package models

import (
	"time"

	"gorm.io/gorm"
)

// Income is migrated for schema completeness but never read: the dashboard
// income figure comes from User.MonthlySalary. Kept as-is rather than
// silently unified with the salary field.
type Income struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	IncomeDate time.Time      `json:"date" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Income) TableName() string {
	return "incomes"
}
