package api

import (
	"net/http"
	"strconv"
	"strings"

	"budgetia/config"
	"budgetia/database"
	"budgetia/middleware"
	"budgetia/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler owns the session lifecycle and account settings.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// RegisterRequest is the signup form.
type RegisterRequest struct {
	Email         string `form:"email" json:"email" binding:"required,email"`
	Password      string `form:"password" json:"password" binding:"required,min=6,max=72"`
	MonthlySalary string `form:"monthly_salary" json:"monthly_salary"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginResponse carries the issued token next to the profile.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// setSessionCookie stores the token for browser flows. Release mode marks
// the cookie Secure; SameSite=Lax keeps cross-site POSTs out.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := h.cfg.Server.Mode == "release"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, maxAge, "/", "", secure, true)
}

// Register creates an account
// @Summary Inscription
// @Description Crée un compte avec email, mot de passe et salaire mensuel optionnel, puis ouvre la session.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Adresse email"
// @Param password formData string true "Mot de passe"
// @Param monthly_salary formData number false "Salaire mensuel"
// @Success 200 {object} Response{data=LoginResponse} "Compte créé"
// @Failure 400 {object} Response "Email ou mot de passe manquant, ou email déjà utilisé"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, "Email et mot de passe requis.")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	salary := 0.0
	if req.MonthlySalary != "" {
		parsed, err := strconv.ParseFloat(req.MonthlySalary, 64)
		if err != nil || parsed < 0 {
			BadRequest(c, "Salaire mensuel invalide.")
			return
		}
		salary = parsed
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		BadRequest(c, "Cet email est déjà utilisé.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "Impossible de chiffrer le mot de passe.")
		return
	}

	user := models.User{
		Email:         req.Email,
		Password:      string(hashed),
		MonthlySalary: salary,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Création du compte impossible."))
		return
	}

	// starter categories so the dashboard is not empty
	var cats []models.Category
	for _, d := range models.RegistrationCategories() {
		cats = append(cats, models.Category{
			UserID:        user.ID,
			Name:          d.Name,
			MonthlyBudget: d.Budget,
			Color:         d.Color,
		})
	}
	if len(cats) > 0 {
		if err := database.DB.Create(&cats).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Création des catégories par défaut impossible."))
			return
		}
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "Génération du token impossible.")
		return
	}
	h.setSessionCookie(c, token, int(h.cfg.JWT.ExpireTime.Seconds()))

	SuccessWithMessage(c, "Compte créé. Bienvenue !", LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// Login opens a session
// @Summary Connexion
// @Description Vérifie les identifiants et renvoie un token, également posé en cookie de session.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Adresse email"
// @Param password formData string true "Mot de passe"
// @Success 200 {object} Response{data=LoginResponse} "Connecté"
// @Failure 401 {object} Response "Email ou mot de passe invalide"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, "Email et mot de passe requis.")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Unauthorized(c, "Email ou mot de passe invalide.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "Email ou mot de passe invalide.")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "Génération du token impossible.")
		return
	}
	h.setSessionCookie(c, token, int(h.cfg.JWT.ExpireTime.Seconds()))

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// Logout closes the session
// @Summary Déconnexion
// @Description Efface le cookie de session.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "Déconnecté"
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	SuccessWithMessage(c, "Déconnecté.", nil)
}

// GetProfile returns the current account
// @Summary Profil courant
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "Profil"
// @Failure 401 {object} Response "Non authentifié"
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Utilisateur introuvable.")
		return
	}

	Success(c, user)
}

// SetSalary updates the monthly salary
// @Summary Mise à jour du salaire mensuel
// @Description Met à jour le salaire mensuel. Une valeur non numérique est une erreur de saisie (400), distincte d'un échec de persistance (500).
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param monthly_salary formData number true "Salaire mensuel"
// @Success 200 {object} Response "Salaire mis à jour"
// @Failure 400 {object} Response "Valeur non numérique ou négative"
// @Router /set_salary [post]
func (h *AuthHandler) SetSalary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	raw := strings.TrimSpace(c.PostForm("monthly_salary"))
	if raw == "" {
		raw = "0"
	}
	salary, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// input error, not a server fault
		BadRequest(c, "Salaire mensuel invalide: "+raw)
		return
	}
	if salary < 0 {
		BadRequest(c, "Le salaire mensuel ne peut pas être négatif.")
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("monthly_salary", salary).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Erreur lors de la mise à jour."))
		return
	}

	SuccessWithMessage(c, "Salaire mensuel mis à jour.", gin.H{"monthly_salary": salary})
}
