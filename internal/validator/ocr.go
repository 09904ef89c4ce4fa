package validator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docuvet/internal/config"
	"docuvet/internal/textmatch"
	"docuvet/pkg/models"
)

// noConfidence is the sentinel the data pass uses for tokens the engine
// could not score; such tokens are excluded from the confidence mean.
const noConfidence = -1

const ocrRemediationNote = "Install the tesseract engine and its language data (e.g. apt-get install tesseract-ocr)"

// OCRValidator extracts text from an image with the local Tesseract engine.
// Engine availability is probed once at construction; when the probe fails,
// every Analyze call reports the same dependency failure.
type OCRValidator struct {
	languages    []string
	expectedText string
	available    bool
	probeErr     string
}

// NewOCRValidator creates an OCR validator, probing the Tesseract
// installation and its language data once.
func NewOCRValidator(cfg *config.Config, opts Options) *OCRValidator {
	v := &OCRValidator{
		languages:    cfg.OCRLanguages,
		expectedText: opts.ExpectedText,
	}
	langs, err := gosseract.GetAvailableLanguages()
	switch {
	case err != nil:
		v.probeErr = err.Error()
	case len(langs) == 0:
		v.probeErr = "no tesseract language data installed"
	default:
		v.available = true
	}
	return v
}

func (v *OCRValidator) Name() string { return "OCR Text Extraction" }

// Analyze decodes the file as an image and runs two recognition passes: a
// plain text pass and a word-level pass that yields per-token confidences.
// Engine errors are reported in the result; there is no retry.
func (v *OCRValidator) Analyze(ctx context.Context, path string) *models.Result {
	start := time.Now()
	result := models.NewResult(v.Name(), path)
	defer func() {
		result.ProcessingTimeSec = time.Since(start).Seconds()
	}()

	if !v.available {
		return result.FailWithNote(
			fmt.Sprintf("OCR dependencies not available: %s", v.probeErr),
			ocrRemediationNote,
		)
	}

	if _, err := os.Stat(path); err != nil {
		return result.Fail("File does not exist")
	}

	if err := ctx.Err(); err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	// Verify the payload decodes as an image before handing it to the
	// engine, so unsupported formats surface a decode error rather than an
	// opaque engine failure.
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(v.languages) > 0 {
		if err := client.SetLanguage(v.languages...); err != nil {
			return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	text, err := client.Text()
	if err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result.Fail(fmt.Sprintf("OCR processing failed: %v", err))
	}

	confidences := make([]float64, 0, len(boxes))
	for _, b := range boxes {
		confidences = append(confidences, b.Confidence)
	}

	extraction := &models.OCRExtraction{
		Text:       text,
		TextLength: utf8.RuneCountInString(strings.TrimSpace(text)),
		WordCount:  len(strings.Fields(text)),
		Confidence: meanConfidence(confidences),
	}
	if v.expectedText != "" {
		attachComparison(extraction, v.expectedText, text)
	}

	result.OCR = extraction
	result.Status = models.StatusSuccess
	return result
}

// meanConfidence averages the scores of tokens the engine could actually
// score. No scoreable tokens yields 0, indistinguishable from a true zero
// average; callers treat that as specified behavior.
func meanConfidence(confidences []float64) float64 {
	var sum float64
	var scored int
	for _, c := range confidences {
		if c == noConfidence {
			continue
		}
		sum += c
		scored++
	}
	if scored == 0 {
		return 0
	}
	return sum / float64(scored)
}

func attachComparison(extraction *models.OCRExtraction, expected, actual string) {
	extraction.ExpectedText = expected
	match := textmatch.Similarity(expected, actual)
	wer := textmatch.WordErrorRate(expected, actual)
	cer := textmatch.CharErrorRate(expected, actual)
	extraction.MatchScore = &match
	extraction.WordErrorRate = &wer
	extraction.CharErrorRate = &cer
}
