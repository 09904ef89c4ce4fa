package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docuvet/internal/config"
	"docuvet/internal/format"
	"docuvet/internal/validator"
	"docuvet/pkg/models"
)

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and returns the process exit code:
// 0 pass/success, 1 failure, 2 warning.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docuvet [flags] <file>",
		Short: "Validate document and image files",
		Long: `Docuvet validates document/image files with one of three methods:

  basic    Basic file validation (type, size, format)
  ocr      OCR text extraction using Tesseract
  azure    Advanced analysis using Azure AI Vision

Exit codes: 0 pass/success, 1 failure, 2 warning.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidate,
	}

	cmd.Flags().StringP("method", "m", "basic", "Analysis method to use (basic|ocr|azure)")
	cmd.Flags().BoolP("verbose", "v", false, "Show verbose output including extracted text")
	cmd.Flags().String("endpoint", "", "Azure AI Vision endpoint (or set AZURE_VISION_ENDPOINT)")
	cmd.Flags().String("key", "", "Azure AI Vision key (or set AZURE_VISION_KEY)")
	cmd.Flags().String("expected-text", "", "Expected text to compare against the OCR extraction")
	cmd.Flags().StringP("config", "c", "", "Path to YAML configuration file (optional)")
	cmd.Flags().Bool("json", false, "Emit the raw result record as JSON")

	cmd.AddCommand(NewServeCommand())

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	method, _ := cmd.Flags().GetString("method")
	verbose, _ := cmd.Flags().GetBool("verbose")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	key, _ := cmd.Flags().GetString("key")
	expectedText, _ := cmd.Flags().GetString("expected-text")
	configPath, _ := cmd.Flags().GetString("config")
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	factory := validator.NewFactory(cfg)
	v, err := factory.Create(validator.Method(method), validator.Options{
		ExpectedText: expectedText,
		Endpoint:     endpoint,
		Key:          key,
	})
	if err != nil {
		return err
	}

	result := v.Analyze(cmd.Context(), args[0])

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), format.Render(result, verbose))
	}

	switch result.Status {
	case models.StatusFailed:
		return &exitError{code: 1}
	case models.StatusWarning:
		return &exitError{code: 2}
	default:
		return nil
	}
}
