package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"budgetia/middleware"
	"budgetia/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler owns the report downloads.
type ExportHandler struct{}

// NewExportHandler creates the export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// parseIntParam reads an optional integer query value with a default.
// A present but non-numeric value is a caller error.
func parseIntParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("paramètre %s invalide: %s", name, raw)
	}
	return v, nil
}

// Export streams a generated report
// @Summary Export des dépenses
// @Description Génère le fichier CSV, XLSX ou PDF des dépenses pour la période demandée et le renvoie en téléchargement sous le nom depenses_{range}_{year}_{month}.{ext}.
// @Tags export
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security BearerAuth
// @Param type query string false "Format" Enums(csv,xlsx,pdf) default(csv)
// @Param range query string false "Période" Enums(month,year,all) default(month)
// @Param year query int false "Année de référence, courante par défaut"
// @Param month query int false "Mois de référence, courant par défaut"
// @Success 200 {file} file "Fichier généré"
// @Failure 400 {object} Response "Année, mois, période ou format invalide"
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	exportType := c.DefaultQuery("type", service.TypeCSV)
	switch exportType {
	case service.TypeCSV, service.TypeXLSX, service.TypePDF:
	default:
		BadRequest(c, "Format invalide: "+exportType)
		return
	}
	rng := c.DefaultQuery("range", service.RangeMonth)
	if !service.ValidRange(rng) {
		BadRequest(c, "Période invalide: "+rng)
		return
	}

	// validate before touching the database
	now := time.Now().UTC()
	year, err := parseIntParam(c, "year", now.Year())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	month, err := parseIntParam(c, "month", int(now.Month()))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if month < 1 || month > 12 {
		BadRequest(c, fmt.Sprintf("paramètre month invalide: %d", month))
		return
	}

	rows, err := service.FetchRows(userID, rng, year, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Requête impossible."))
		return
	}

	var (
		payload     []byte
		contentType string
	)
	switch exportType {
	case service.TypeCSV:
		payload, err = service.RenderCSV(rows)
		contentType = "text/csv; charset=utf-8"
	case service.TypeXLSX:
		payload, err = service.RenderXLSX(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case service.TypePDF:
		payload, err = service.RenderPDF(rows, fmt.Sprintf("Dépenses (%s)", rng))
		contentType = "application/pdf"
	}
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Génération du fichier impossible."))
		return
	}

	filename := service.ExportFilename(rng, year, month, exportType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(len(payload)))
	c.Data(http.StatusOK, contentType, payload)
}
