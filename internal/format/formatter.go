// Package format renders a validation Result as human-readable text.
package format

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"docuvet/pkg/models"
)

const bannerWidth = 60

// checkOrder fixes the render order of known basic-validation checks so the
// output is deterministic; unknown keys follow, sorted.
var checkOrder = []string{
	"file_size",
	"file_size_readable",
	"mime_type",
	"format_supported",
	"readable",
	"detected_type",
	"extension",
}

// Render produces the text report for a result. It is a pure function: a
// missing field suppresses its entire block with no placeholder output.
func Render(result *models.Result, verbose bool) string {
	var b strings.Builder
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(&b, "\n%s\n", banner)
	fmt.Fprintf(&b, "Analysis Method: %s\n", result.Method)
	fmt.Fprintf(&b, "File: %s\n", result.FilePath)
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(string(result.Status)))
	fmt.Fprintf(&b, "%s\n", banner)

	if result.Error != "" {
		fmt.Fprintf(&b, "\nError: %s\n", result.Error)
		if result.Note != "" {
			fmt.Fprintf(&b, "Note: %s\n", result.Note)
		}
	}
	if result.Warning != "" {
		fmt.Fprintf(&b, "\nWarning: %s\n", result.Warning)
	}

	renderChecks(&b, result.Checks)
	renderOCR(&b, result.OCR, verbose)
	renderAnalysis(&b, result.Analysis, verbose)

	fmt.Fprintf(&b, "\n%s\n", banner)
	return b.String()
}

func renderChecks(b *strings.Builder, checks map[string]interface{}) {
	if len(checks) == 0 {
		return
	}
	fmt.Fprintf(b, "\nValidation Checks:\n")
	for _, key := range orderedCheckKeys(checks) {
		fmt.Fprintf(b, "  - %s: %v\n", titleCase(key), checks[key])
	}
}

func renderOCR(b *strings.Builder, ocr *models.OCRExtraction, verbose bool) {
	if ocr == nil {
		return
	}
	fmt.Fprintf(b, "\nOCR Results:\n")
	fmt.Fprintf(b, "  - Text Length: %d characters\n", ocr.TextLength)
	fmt.Fprintf(b, "  - Word Count: %d words\n", ocr.WordCount)
	fmt.Fprintf(b, "  - Confidence: %.2f%%\n", ocr.Confidence)
	if ocr.MatchScore != nil {
		fmt.Fprintf(b, "  - Match Score: %.2f\n", *ocr.MatchScore)
	}
	if ocr.WordErrorRate != nil {
		fmt.Fprintf(b, "  - Word Error Rate: %.2f\n", *ocr.WordErrorRate)
	}
	if verbose && ocr.Text != "" {
		fmt.Fprintf(b, "\n  Extracted Text (first 500 chars):\n")
		fmt.Fprintf(b, "  %s\n", truncate(ocr.Text, 500))
	}
}

func renderAnalysis(b *strings.Builder, analysis *models.VisionAnalysis, verbose bool) {
	if analysis == nil || analysis.Empty() {
		return
	}
	fmt.Fprintf(b, "\nAzure AI Vision Analysis:\n")

	if analysis.Caption != nil {
		fmt.Fprintf(b, "  - Caption: %s\n", analysis.Caption.Text)
		fmt.Fprintf(b, "    Confidence: %.2f\n", analysis.Caption.Confidence)
	}

	if analysis.Text != nil {
		fmt.Fprintf(b, "  - Detected Text: %d characters\n", utf8.RuneCountInString(analysis.Text.FullText))
		if verbose && analysis.Text.FullText != "" {
			fmt.Fprintf(b, "    %s...\n", truncate(analysis.Text.FullText, 200))
		}
	}

	if len(analysis.Tags) > 0 {
		names := make([]string, 0, 5)
		for _, tag := range analysis.Tags {
			if len(names) == 5 {
				break
			}
			names = append(names, tag.Name)
		}
		fmt.Fprintf(b, "  - Top Tags: %s\n", strings.Join(names, ", "))
	}

	if len(analysis.Objects) > 0 {
		fmt.Fprintf(b, "  - Objects Detected: %d\n", len(analysis.Objects))
		if verbose {
			for i, obj := range analysis.Objects {
				if i == 5 {
					break
				}
				fmt.Fprintf(b, "    - %s (confidence: %.2f)\n", obj.Name, obj.Confidence)
			}
		}
	}

	if analysis.PeopleCount != nil {
		fmt.Fprintf(b, "  - People Detected: %d\n", *analysis.PeopleCount)
	}
}

func orderedCheckKeys(checks map[string]interface{}) []string {
	keys := make([]string, 0, len(checks))
	seen := make(map[string]bool, len(checks))
	for _, key := range checkOrder {
		if _, ok := checks[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range checks {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// titleCase turns a snake_case check name into a display label, e.g.
// "file_size_readable" -> "File Size Readable".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
