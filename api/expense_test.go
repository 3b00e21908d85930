package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "monthly_budget", "color", "created_at", "updated_at", "deleted_at"})
}

func sumRow(total float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"total"}).AddRow(total)
}

func TestExpenseCreate_OverBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()

	// owning category, budget 300
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(3).
		WillReturnRows(categoryRows().
			AddRow(3, 1, "Nourriture", 300.0, "#60a5fa", now, now, nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	// category use for the month, then salary, then month total
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(310))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "monthly_salary", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "demo@exemple.com", "x", 2000.0, now, now, nil))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(310))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/add_expense", NewExpenseHandler().Create)

	w := postForm(router, "/add_expense",
		"title=Grosses+courses&amount=310&category_id=3&datetime=2024-05-10T12%3A00")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.InDelta(t, 103.3, resp["pct_category"].(float64), 0.01)
	assert.InDelta(t, -10.0, resp["remaining_category"].(float64), 0.01)
	assert.InDelta(t, 1690.0, resp["remaining_global"].(float64), 0.01)

	warning := resp["warning"].(map[string]interface{})
	assert.Equal(t, "danger", warning["level"])
	assert.Equal(t, "Budget Nourriture dépassé (103.3%)", warning["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseCreate_UnderThresholdsHasNoWarning(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(3).
		WillReturnRows(categoryRows().
			AddRow(3, 1, "Transport", 120.0, "#34d399", now, now, nil))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(30))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "monthly_salary", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "demo@exemple.com", "x", 2000.0, now, now, nil))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(30))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/add_expense", NewExpenseHandler().Create)

	w := postForm(router, "/add_expense",
		"title=M%C3%A9tro&amount=30&category_id=3&datetime=2024-05-10")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.Nil(t, resp["warning"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseCreate_ForeignCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	// the category exists but belongs to user 2
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(5).
		WillReturnRows(categoryRows().
			AddRow(5, 2, "Loisirs", 150.0, "#f87171", now, now, nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/add_expense", NewExpenseHandler().Create)

	w := postForm(router, "/add_expense", "title=Cin%C3%A9ma&amount=12&category_id=5")
	assert.Equal(t, 403, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, "Catégorie invalide.", resp["error"])
	// nothing was inserted
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseCreate_MissingCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(99).
		WillReturnRows(categoryRows())

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/add_expense", NewExpenseHandler().Create)

	w := postForm(router, "/add_expense", "title=Test&amount=5&category_id=99")
	assert.Equal(t, 404, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Catégorie introuvable.", resp["error"])
}

func TestExpenseCreate_InvalidDatetime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/add_expense", NewExpenseHandler().Create)

	w := postForm(router, "/add_expense", "title=Test&amount=5&category_id=3&datetime=hier")
	assert.Equal(t, 400, w.Code)
}

func TestExpenseList_Pagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT count").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "title", "amount", "expense_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(51, 1, 3, "Courses", 42.5, now, now, now, nil).
			AddRow(52, 1, 3, "Essence", 60.0, now, now, now, nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/expenses", NewExpenseHandler().List)

	req := httptest.NewRequest("GET", "/expenses?page=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(120), data["total"])
	assert.Equal(t, float64(2), data["page"])
	assert.Equal(t, float64(ExpensesPageSize), data["page_size"])
	assert.Len(t, data["list"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
