package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"budgetia/database"
	"budgetia/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Export ranges.
const (
	RangeMonth = "month"
	RangeYear  = "year"
	RangeAll   = "all"
)

// Export types.
const (
	TypeCSV  = "csv"
	TypeXLSX = "xlsx"
	TypePDF  = "pdf"
)

// rowTimeLayout matches the ISO-8601 rendering of naive timestamps.
const rowTimeLayout = "2006-01-02T15:04:05"

// ExportRow is the flat projection shared by every renderer.
type ExportRow struct {
	Title    string
	Amount   float64
	Category string
	Datetime string
}

// ValidRange reports whether rng is a supported export range.
func ValidRange(rng string) bool {
	return rng == RangeMonth || rng == RangeYear || rng == RangeAll
}

// ExportFilename builds the deterministic download name,
// depenses_{range}_{year}_{month-or-empty}.{ext}.
func ExportFilename(rng string, year, month int, ext string) string {
	monthPart := ""
	if rng == RangeMonth {
		monthPart = strconv.Itoa(month)
	}
	return fmt.Sprintf("depenses_%s_%d_%s.%s", rng, year, monthPart, ext)
}

// FetchRows selects the user's expenses for the requested range, ordered by
// expense time ascending, and projects them into export rows. A missing
// category resolves to an empty name instead of failing the export.
func FetchRows(userID uint, rng string, year, month int) ([]ExportRow, error) {
	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

	switch rng {
	case RangeMonth:
		start, end := MonthBounds(year, month)
		query = query.Where("expense_time >= ? AND expense_time < ?", start, end)
	case RangeYear:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("expense_time >= ? AND expense_time < ?", start, end)
	}

	var expenses []models.Expense
	if err := query.Order("expense_time ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}

	// one explicit lookup for category names, "" for deleted references
	var categories []models.Category
	if err := database.DB.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	rows := make([]ExportRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExportRow{
			Title:    e.Title,
			Amount:   e.Amount,
			Category: names[e.CategoryID],
			Datetime: e.ExpenseTime.UTC().Format(rowTimeLayout),
		})
	}
	return rows, nil
}

// RenderCSV writes the rows as UTF-8 CSV with a fixed header order.
// Amounts are formatted with the shortest lossless representation.
func RenderCSV(rows []ExportRow) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"titre", "montant", "categorie", "datetime"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Title,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.Category,
			r.Datetime,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSXSheetName is the single worksheet of the spreadsheet export.
const XLSXSheetName = "Dépenses"

// RenderXLSX writes the rows into a single-sheet workbook with the same
// column order as the CSV export.
func RenderXLSX(rows []ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", XLSXSheetName)

	headers := []string{"titre", "montant", "categorie", "datetime"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(XLSXSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(XLSXSheetName, fmt.Sprintf("A%d", row), r.Title)
		f.SetCellValue(XLSXSheetName, fmt.Sprintf("B%d", row), r.Amount)
		f.SetCellValue(XLSXSheetName, fmt.Sprintf("C%d", row), r.Category)
		f.SetCellValue(XLSXSheetName, fmt.Sprintf("D%d", row), r.Datetime)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDF layout, in points on an A4 portrait page.
const (
	pdfMargin     = 50.0 // left, top and bottom margins
	pdfTitleGap   = 30.0 // gap between title baseline and first row
	pdfLineHeight = 16.0
)

// RenderPDF writes the rows as a paginated document: a bold title, then one
// line per row. The page break happens before the next row, once the cursor
// has passed the bottom margin, so an exactly-full last page stays last.
func RenderPDF(rows []ExportRow, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - pdfMargin

	pdf.AddPage()
	y := pdfMargin
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMargin, y, tr(title))
	y += pdfTitleGap
	pdf.SetFont("Helvetica", "", 11)

	for _, r := range rows {
		if y > bottom {
			pdf.AddPage()
			y = pdfMargin
			pdf.SetFont("Helvetica", "", 11)
		}
		line := fmt.Sprintf("%s  |  %s  |  %s  |  %.2f€", r.Datetime, r.Category, r.Title, r.Amount)
		pdf.Text(pdfMargin, y, tr(line))
		y += pdfLineHeight
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
