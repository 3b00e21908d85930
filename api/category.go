package api

import (
	"strconv"
	"strings"

	"budgetia/database"
	"budgetia/middleware"
	"budgetia/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler owns the budget-category pages.
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryForm is the create/edit form.
type CategoryForm struct {
	Name   string `form:"name" json:"name"`
	Budget string `form:"budget" json:"budget"`
	Color  string `form:"color" json:"color"`
}

// findOwnedCategory loads a category and enforces ownership. A missing id is
// a 404; someone else's category is an explicit 403, never a silent filter.
func findOwnedCategory(c *gin.Context, userID uint) (*models.Category, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Identifiant invalide.")
		return nil, false
	}

	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		NotFound(c, "Catégorie introuvable.")
		return nil, false
	}
	if cat.UserID != userID {
		Forbidden(c, "Accès refusé")
		return nil, false
	}
	return &cat, true
}

// parseBudget reads the budget field; an empty submission counts as 0,
// on create and edit alike.
func parseBudget(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil || budget < 0 {
		return 0, false
	}
	return budget, true
}

// List returns the caller's categories
// @Summary Liste des catégories
// @Description Liste les catégories de l'utilisateur courant, triées par nom.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category} "Catégories"
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var cats []models.Category
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&cats).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Requête impossible."))
		return
	}
	Success(c, cats)
}

// Create adds a category
// @Summary Création d'une catégorie
// @Tags categories
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Nom"
// @Param budget formData number false "Budget mensuel"
// @Param color formData string false "Couleur d'affichage"
// @Success 200 {object} Response{data=models.Category} "Catégorie créée"
// @Failure 400 {object} Response "Nom manquant ou budget invalide"
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Paramètres invalides."))
		return
	}
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		BadRequest(c, "Le nom de la catégorie est requis.")
		return
	}
	budget, ok := parseBudget(form.Budget)
	if !ok {
		BadRequest(c, "Budget mensuel invalide.")
		return
	}
	color := form.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	cat := models.Category{
		UserID:        userID,
		Name:          form.Name,
		MonthlyBudget: budget,
		Color:         color,
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Création impossible."))
		return
	}
	SuccessWithMessage(c, "Catégorie créée.", cat)
}

// Get returns one category for the edit page
// @Summary Détail d'une catégorie
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Identifiant"
// @Success 200 {object} Response{data=models.Category} "Catégorie"
// @Failure 403 {object} Response "Accès refusé"
// @Failure 404 {object} Response "Catégorie introuvable"
// @Router /edit_category/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cat, ok := findOwnedCategory(c, userID)
	if !ok {
		return
	}
	Success(c, cat)
}

// Update edits a category
// @Summary Modification d'une catégorie
// @Description Met à jour nom, budget et couleur. Nom et couleur absents conservent leur valeur; un budget vide vaut 0.
// @Tags categories
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Identifiant"
// @Param name formData string false "Nom"
// @Param budget formData number false "Budget mensuel"
// @Param color formData string false "Couleur d'affichage"
// @Success 200 {object} Response{data=models.Category} "Catégorie mise à jour"
// @Failure 403 {object} Response "Accès refusé"
// @Failure 404 {object} Response "Catégorie introuvable"
// @Router /edit_category/{id} [post]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cat, ok := findOwnedCategory(c, userID)
	if !ok {
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Paramètres invalides."))
		return
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(form.Name); name != "" {
		updates["name"] = name
	}
	budget, okBudget := parseBudget(form.Budget)
	if !okBudget {
		BadRequest(c, "Budget mensuel invalide.")
		return
	}
	updates["monthly_budget"] = budget
	if form.Color != "" {
		updates["color"] = form.Color
	}

	if err := database.DB.Model(cat).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Mise à jour impossible."))
		return
	}
	database.DB.First(cat, cat.ID)
	SuccessWithMessage(c, "Catégorie mise à jour.", cat)
}

// Delete removes a category and its expenses
// @Summary Suppression d'une catégorie
// @Description Supprime la catégorie et, en cascade, toutes ses dépenses.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Identifiant"
// @Success 200 {object} Response "Catégorie supprimée"
// @Failure 403 {object} Response "Accès refusé"
// @Failure 404 {object} Response "Catégorie introuvable"
// @Router /delete_category/{id} [post]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cat, ok := findOwnedCategory(c, userID)
	if !ok {
		return
	}

	// expenses follow their category, in the same transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", cat.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(cat).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Suppression impossible."))
		return
	}
	SuccessWithMessage(c, "Catégorie supprimée.", nil)
}
