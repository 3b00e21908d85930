package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budgetia/database"
	"budgetia/middleware"
	"budgetia/models"
	"budgetia/service"

	"github.com/gin-gonic/gin"
)

// ExpensesPageSize is the fixed page size of the expense list.
const ExpensesPageSize = 50

// ExpenseHandler owns the expense pages.
type ExpenseHandler struct{}

// NewExpenseHandler creates the expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// expenseTimeLayouts accepts the ISO-8601 shapes browsers submit.
var expenseTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseExpenseTime(raw string) (time.Time, error) {
	var firstErr error
	for _, layout := range expenseTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// List returns a page of the caller's expenses
// @Summary Liste des dépenses
// @Description Liste paginée (50 par page) des dépenses de l'utilisateur courant, la plus récente d'abord.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "Dépenses"
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	page := 1
	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}

	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	offset := (page - 1) * ExpensesPageSize
	if err := query.Order("expense_time DESC").Offset(offset).Limit(ExpensesPageSize).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Requête impossible."))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: ExpensesPageSize,
		List:     expenses,
	})
}

// Create records an expense and evaluates the budget warning
// @Summary Ajout d'une dépense
// @Description Enregistre une dépense puis renvoie la consommation du budget de la catégorie, le reste global du mois et l'alerte éventuelle. C'est le seul retour de l'action, rien n'est journalisé côté alertes.
// @Tags expenses
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Intitulé"
// @Param amount formData number true "Montant"
// @Param category_id formData int true "Catégorie"
// @Param datetime formData string false "Horodatage ISO-8601, maintenant par défaut"
// @Success 200 {object} map[string]interface{} "ok, pct_category, remaining_category, remaining_global, warning"
// @Failure 400 {object} map[string]interface{} "Champ invalide"
// @Failure 403 {object} map[string]interface{} "Catégorie d'un autre utilisateur"
// @Failure 404 {object} map[string]interface{} "Catégorie inexistante"
// @Router /add_expense [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Intitulé requis."})
		return
	}

	// amount sign is deliberately unconstrained, refunds go in as negatives
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("amount")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Montant invalide."})
		return
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Catégorie invalide."})
		return
	}

	expenseTime := time.Now().UTC()
	if raw := strings.TrimSpace(c.PostForm("datetime")); raw != "" {
		expenseTime, err = parseExpenseTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Horodatage invalide, format ISO-8601 attendu."})
			return
		}
	}

	// the category must belong to the caller
	var cat models.Category
	if err := database.DB.First(&cat, uint(categoryID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Catégorie introuvable."})
		return
	}
	if cat.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "Catégorie invalide."})
		return
	}

	expense := models.Expense{
		UserID:      userID,
		CategoryID:  cat.ID,
		Title:       title,
		Amount:      amount,
		ExpenseTime: expenseTime,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Enregistrement impossible."))
		return
	}

	year, month := expenseTime.Year(), int(expenseTime.Month())
	usedCat := service.CategoryUsedForMonth(userID, cat.ID, year, month)
	pct, warning := service.EvaluateBudget(cat.Name, usedCat, cat.MonthlyBudget)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Utilisateur introuvable."))
		return
	}
	totalExpenses := service.TotalExpensesForMonth(userID, year, month)
	remainingGlobal := user.MonthlySalary - totalExpenses

	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"pct_category":       round1(pct),
		"remaining_category": round2(cat.MonthlyBudget - usedCat),
		"remaining_global":   round2(remainingGlobal),
		"warning":            warning,
	})
}
