package service

import (
	"fmt"
	"time"

	"budgetia/database"
	"budgetia/models"
)

// TrendMonths is the length of the dashboard trailing series.
const TrendMonths = 6

// MonthBounds returns the half-open UTC interval [start, end) covering the
// given calendar month. time.Date normalizes month overflow, so December
// rolls into January of the next year.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// TotalExpensesForMonth sums the user's expenses for one month.
// Returns 0 when there are no matching rows.
func TotalExpensesForMonth(userID uint, year, month int) float64 {
	start, end := MonthBounds(year, month)
	var total float64
	database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND expense_time >= ? AND expense_time < ?", userID, start, end).
		Scan(&total)
	return total
}

// CategoryUsedForMonth sums the user's expenses in one category for one month.
// Returns 0 when there are no matching rows.
func CategoryUsedForMonth(userID, categoryID uint, year, month int) float64 {
	start, end := MonthBounds(year, month)
	var total float64
	database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_id = ? AND expense_time >= ? AND expense_time < ?",
			userID, categoryID, start, end).
		Scan(&total)
	return total
}

// MonthTotal is one point of the trailing series.
type MonthTotal struct {
	Label string  `json:"label"` // YYYY-MM
	Total float64 `json:"total"`
}

// TrendLabels returns the YYYY-MM labels for the TrendMonths months ending
// at the anchor month, in chronological order.
func TrendLabels(year, month int) []string {
	labels := make([]string, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		m := time.Date(year, time.Month(month-i), 1, 0, 0, 0, 0, time.UTC)
		labels = append(labels, fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())))
	}
	return labels
}

// MonthlyTrend returns the per-month expense totals for the TrendMonths
// months ending at the anchor month, in chronological order.
func MonthlyTrend(userID uint, year, month int) []MonthTotal {
	trend := make([]MonthTotal, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		m := time.Date(year, time.Month(month-i), 1, 0, 0, 0, 0, time.UTC)
		trend = append(trend, MonthTotal{
			Label: fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())),
			Total: TotalExpensesForMonth(userID, m.Year(), int(m.Month())),
		})
	}
	return trend
}
