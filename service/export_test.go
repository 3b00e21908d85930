package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []ExportRow {
	return []ExportRow{
		{Title: "Courses", Amount: 42.5, Category: "Nourriture", Datetime: "2024-01-03T10:00:00"},
		{Title: "Métro", Amount: 1.9, Category: "Transport", Datetime: "2024-01-05T08:30:00"},
		{Title: "Loyer", Amount: 800, Category: "", Datetime: "2024-01-06T00:00:00"},
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "depenses_month_2024_1.csv", ExportFilename(RangeMonth, 2024, 1, "csv"))
	// year and all ranges leave the month slot empty
	assert.Equal(t, "depenses_year_2024_.xlsx", ExportFilename(RangeYear, 2024, 1, "xlsx"))
	assert.Equal(t, "depenses_all_2024_.pdf", ExportFilename(RangeAll, 2024, 6, "pdf"))
}

func TestValidRange(t *testing.T) {
	assert.True(t, ValidRange(RangeMonth))
	assert.True(t, ValidRange(RangeYear))
	assert.True(t, ValidRange(RangeAll))
	assert.False(t, ValidRange("week"))
	assert.False(t, ValidRange(""))
}

func TestFetchRows_MissingCategoryFallsBack(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "title", "amount", "expense_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 7, "Courses", 42.5, now, now, now, nil).
			AddRow(2, 1, 99, "Mystère", 10.0, now.Add(time.Hour), now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "monthly_budget", "color", "created_at", "updated_at", "deleted_at"}).
			AddRow(7, 1, "Nourriture", 300.0, "#60a5fa", now, now, nil))

	rows, err := FetchRows(1, RangeAll, 2024, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nourriture", rows[0].Category)
	// deleted category resolves to an empty name, not an error
	assert.Equal(t, "", rows[1].Category)
	assert.Equal(t, "2024-01-03T10:00:00", rows[0].Datetime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	// header + 3 rows
	require.Len(t, lines, 4)
	assert.Equal(t, "titre,montant,categorie,datetime", lines[0])
	// amounts keep their shortest lossless form
	assert.Equal(t, "Courses,42.5,Nourriture,2024-01-03T10:00:00", lines[1])
	assert.Equal(t, "Métro,1.9,Transport,2024-01-05T08:30:00", lines[2])
	assert.Equal(t, "Loyer,800,,2024-01-06T00:00:00", lines[3])
}

func TestRenderCSV_Empty(t *testing.T) {
	out, err := RenderCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "titre,montant,categorie,datetime\n", string(out))
}

func TestRenderXLSX(t *testing.T) {
	out, err := RenderXLSX(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{XLSXSheetName}, f.GetSheetList())

	rows, err := f.GetRows(XLSXSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"titre", "montant", "categorie", "datetime"}, rows[0])
	assert.Equal(t, "Courses", rows[1][0])
	assert.Equal(t, "42.5", rows[1][1])
}

func TestRenderPDF_PageBreak(t *testing.T) {
	manyRows := func(n int) []ExportRow {
		rows := make([]ExportRow, n)
		for i := range rows {
			rows[i] = ExportRow{Title: "Achat", Amount: 9.99, Category: "Divers", Datetime: "2024-01-01T12:00:00"}
		}
		return rows
	}

	// 44 lines fit under the bottom margin on the first page
	out, err := RenderPDF(manyRows(44), "Dépenses (all)")
	require.NoError(t, err)
	assert.Contains(t, string(out), "/Count 1")

	// 45 lines fill the page exactly, with no trailing blank page
	out, err = RenderPDF(manyRows(45), "Dépenses (all)")
	require.NoError(t, err)
	assert.Contains(t, string(out), "/Count 1")
	assert.NotContains(t, string(out), "/Count 2")

	// the 46th line opens a second page
	out, err = RenderPDF(manyRows(46), "Dépenses (all)")
	require.NoError(t, err)
	assert.Contains(t, string(out), "/Count 2")
}

func TestRenderPDF_Empty(t *testing.T) {
	out, err := RenderPDF(nil, "Dépenses (month)")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), "/Count 1")
}
