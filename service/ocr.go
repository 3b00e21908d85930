package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	// decoders for the receipt formats the upload accepts
	_ "image/gif"
	_ "image/jpeg"

	"budgetia/config"

	"github.com/otiai10/gosseract/v2"
)

// ErrScanTimeout is returned when text extraction exceeds the configured
// deadline. The caller may simply retry the upload.
var ErrScanTimeout = errors.New("délai d'analyse du ticket dépassé, réessayez")

// OCRService extracts raw text from receipt images through tesseract. It is
// a pass-through: no amount or date parsing happens here.
type OCRService struct {
	cfg *config.OCRConfig
}

// NewOCRService creates the receipt text extractor.
func NewOCRService(cfg *config.OCRConfig) *OCRService {
	return &OCRService{cfg: cfg}
}

// normalizeImage decodes the upload and re-encodes it as a PNG-backed RGB
// raster so palette and alpha-channel images all reach tesseract the same way.
func normalizeImage(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image illisible: %w", err)
	}

	rgb := image.NewRGBA(img.Bounds())
	draw.Draw(rgb, rgb.Bounds(), img, img.Bounds().Min, draw.Src)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, rgb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pickLanguage returns the preferred model when the local tesseract
// installation has it, otherwise "" for the default model.
func (s *OCRService) pickLanguage() string {
	preferred := s.cfg.Language
	if preferred == "" {
		return ""
	}
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return ""
	}
	for _, l := range langs {
		if l == preferred {
			return preferred
		}
	}
	return ""
}

// ScanReceipt runs OCR on an uploaded image and returns the extracted text
// verbatim. The configured timeout bounds the blocking tesseract call;
// expiry surfaces as ErrScanTimeout rather than a transparent retry.
func (s *OCRService) ScanReceipt(ctx context.Context, upload io.Reader) (string, error) {
	raster, err := normalizeImage(upload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if lang := s.pickLanguage(); lang != "" {
			if err := client.SetLanguage(lang); err != nil {
				done <- result{err: fmt.Errorf("modèle de langue %s: %w", lang, err)}
				return
			}
		}
		if err := client.SetImageFromBytes(raster); err != nil {
			done <- result{err: err}
			return
		}
		text, err := client.Text()
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrScanTimeout
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		return res.text, nil
	}
}
