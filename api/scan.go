package api

import (
	"errors"
	"net/http"

	"budgetia/service"

	"github.com/gin-gonic/gin"
)

// ScanHandler owns the receipt OCR endpoint.
type ScanHandler struct {
	ocr *service.OCRService
}

// NewScanHandler creates the scan handler.
func NewScanHandler(ocr *service.OCRService) *ScanHandler {
	return &ScanHandler{ocr: ocr}
}

// Info describes the upload contract for GET callers
// @Summary Informations sur le scan de ticket
// @Tags scan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Champ multipart attendu"
// @Router /scan_ticket [get]
func (h *ScanHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"field": "ticket",
		"hint":  "POST multipart/form-data avec l'image du ticket dans le champ 'ticket'.",
	})
}

// Scan extracts raw text from an uploaded receipt image
// @Summary Scan d'un ticket de caisse
// @Description Passe l'image au moteur OCR (modèle français si disponible) et renvoie le texte brut, sans analyse des montants ni des dates.
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param ticket formData file true "Image du ticket"
// @Success 200 {object} map[string]interface{} "ok, text"
// @Failure 400 {object} map[string]interface{} "Fichier manquant"
// @Failure 500 {object} map[string]interface{} "Image illisible ou moteur OCR indisponible"
// @Router /scan_ticket [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	fileHeader, err := c.FormFile("ticket")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Fichier manquant"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer file.Close()

	text, err := h.ocr.ScanReceipt(c.Request.Context(), file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrScanTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "text": text})
}
