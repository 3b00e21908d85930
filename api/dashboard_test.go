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

func TestDashboardIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "monthly_salary", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "demo@exemple.com", "x", 2000.0, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1)).
		WillReturnRows(categoryRows().
			AddRow(1, 1, "Nourriture", 300.0, "#60a5fa", now, now, nil).
			AddRow(2, 1, "Transport", 120.0, "", now, now, nil))

	// per-category use for the current month
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(150))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(30))

	// recent expense feed
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "title", "amount", "expense_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(9, 1, 1, "Courses", 42.5, now, now, now, nil))

	// six trend points then the month total
	for i := 0; i < 6; i++ {
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(float64(10 * (i + 1))))
	}
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(180))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/", NewDashboardHandler().Index)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})

	cats := data["categories"].([]interface{})
	require.Len(t, cats, 2)
	first := cats[0].(map[string]interface{})
	assert.Equal(t, "Nourriture", first["name"])
	assert.InDelta(t, 150.0, first["used"].(float64), 0.01)
	assert.InDelta(t, 150.0, first["remaining"].(float64), 0.01)
	assert.InDelta(t, 50.0, first["pct"].(float64), 0.01)
	// a category without a stored color gets the default
	second := cats[1].(map[string]interface{})
	assert.Equal(t, "#888", second["color"])

	assert.Len(t, data["months"], 6)
	assert.Len(t, data["sums"], 6)
	assert.Equal(t, 2000.0, data["total_income"])
	assert.Equal(t, 180.0, data["total_expenses"])
	assert.Equal(t, 1820.0, data["remaining_global"])
	assert.Len(t, data["expenses"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
