package api

import (
	"time"

	"budgetia/database"
	"budgetia/middleware"
	"budgetia/models"
	"budgetia/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler owns the home page aggregation.
type DashboardHandler struct{}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// CategoryUsage is one category line of the dashboard.
type CategoryUsage struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
	Pct       float64 `json:"pct"`
	Color     string  `json:"color"`
}

// recentExpensesLimit caps the expense feed shown on the dashboard.
const recentExpensesLimit = 200

// Index renders the dashboard aggregation
// @Summary Tableau de bord
// @Description Agrégats du mois courant: consommation par catégorie, tendance sur six mois, total des dépenses et reste global. Le revenu affiché est le salaire mensuel du compte.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "Agrégats du mois"
// @Router / [get]
func (h *DashboardHandler) Index(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Utilisateur introuvable.")
		return
	}

	var cats []models.Category
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&cats).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Requête impossible."))
		return
	}

	usage := make([]CategoryUsage, 0, len(cats))
	for _, cat := range cats {
		used := service.CategoryUsedForMonth(userID, cat.ID, year, month)
		pct, _ := service.EvaluateBudget(cat.Name, used, cat.MonthlyBudget)
		color := cat.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		usage = append(usage, CategoryUsage{
			ID:        cat.ID,
			Name:      cat.Name,
			Budget:    cat.MonthlyBudget,
			Used:      used,
			Remaining: cat.MonthlyBudget - used,
			Pct:       round1(pct),
			Color:     color,
		})
	}

	var recent []models.Expense
	database.DB.Where("user_id = ?", userID).
		Order("expense_time DESC").Limit(recentExpensesLimit).Find(&recent)

	trend := service.MonthlyTrend(userID, year, month)
	months := make([]string, 0, len(trend))
	sums := make([]float64, 0, len(trend))
	for _, point := range trend {
		months = append(months, point.Label)
		sums = append(sums, point.Total)
	}

	// income is the flat salary figure; income rows are not aggregated
	totalIncome := user.MonthlySalary
	totalExpenses := service.TotalExpensesForMonth(userID, year, month)

	Success(c, gin.H{
		"year":             year,
		"month":            month,
		"categories":       usage,
		"expenses":         recent,
		"months":           months,
		"sums":             sums,
		"total_income":     totalIncome,
		"total_expenses":   totalExpenses,
		"remaining_global": totalIncome - totalExpenses,
	})
}
