package validator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"docuvet/internal/config"
	"docuvet/internal/vision"
	"docuvet/pkg/models"
)

const visionRemediationNote = "Set AZURE_VISION_ENDPOINT and AZURE_VISION_KEY environment variables"

// VisionValidator analyzes a document with Azure AI Vision, requesting the
// caption, read, tags, objects and people features in a single call.
type VisionValidator struct {
	endpoint string
	key      string
	timeout  time.Duration
}

// NewVisionValidator creates a vision validator. Explicit endpoint/key
// options win over the configured (environment-provided) values.
func NewVisionValidator(cfg *config.Config, opts Options) *VisionValidator {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = cfg.AzureVisionEndpoint
	}
	key := opts.Key
	if key == "" {
		key = cfg.AzureVisionKey
	}
	return &VisionValidator{
		endpoint: endpoint,
		key:      key,
		timeout:  cfg.VisionTimeout,
	}
}

func (v *VisionValidator) Name() string { return "Azure AI Vision" }

// Analyze reads the whole file and submits it to the remote service.
// Credentials are checked on every call before any network access; a
// failure at any later point discards all analysis gathered in the call.
func (v *VisionValidator) Analyze(ctx context.Context, path string) *models.Result {
	start := time.Now()
	result := models.NewResult(v.Name(), path)
	defer func() {
		result.ProcessingTimeSec = time.Since(start).Seconds()
	}()

	if v.endpoint == "" || v.key == "" {
		return result.FailWithNote("Azure credentials not configured", visionRemediationNote)
	}

	if _, err := os.Stat(path); err != nil {
		return result.Fail("File does not exist")
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		return result.Fail(fmt.Sprintf("Azure AI Vision analysis failed: %v", err))
	}

	client := vision.NewClient(v.endpoint, v.key, v.timeout)
	analyzed, err := client.Analyze(ctx, imageData)
	if err != nil {
		return result.Fail(fmt.Sprintf("Azure AI Vision analysis failed: %v", err))
	}

	result.Analysis = mapAnalysis(analyzed)
	result.Status = models.StatusSuccess
	return result
}

// mapAnalysis converts the wire response into the result's analysis
// structure, omitting every feature the response did not include.
func mapAnalysis(in *vision.AnalyzeResult) *models.VisionAnalysis {
	out := &models.VisionAnalysis{}

	if in.CaptionResult != nil {
		out.Caption = &models.Caption{
			Text:       in.CaptionResult.Text,
			Confidence: in.CaptionResult.Confidence,
		}
	}

	if in.ReadResult != nil {
		blocks := make([]models.TextBlock, 0, len(in.ReadResult.Blocks))
		var allLines []string
		for _, block := range in.ReadResult.Blocks {
			lines := make([]string, 0, len(block.Lines))
			for _, line := range block.Lines {
				lines = append(lines, line.Text)
			}
			blocks = append(blocks, models.TextBlock{Lines: lines})
			allLines = append(allLines, lines...)
		}
		out.Text = &models.DetectedText{
			Blocks:   blocks,
			FullText: strings.Join(allLines, " "),
		}
	}

	if in.TagsResult != nil {
		for _, tag := range in.TagsResult.Values {
			out.Tags = append(out.Tags, models.TagScore{Name: tag.Name, Confidence: tag.Confidence})
		}
	}

	if in.ObjectsResult != nil {
		for _, obj := range in.ObjectsResult.Values {
			score := models.TagScore{Name: "unknown", Confidence: 0}
			if len(obj.Tags) > 0 {
				score = models.TagScore{Name: obj.Tags[0].Name, Confidence: obj.Tags[0].Confidence}
			}
			out.Objects = append(out.Objects, score)
		}
	}

	if in.PeopleResult != nil {
		count := len(in.PeopleResult.Values)
		out.PeopleCount = &count
	}

	return out
}
