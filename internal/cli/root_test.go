package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docuvet/pkg/models"
)

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestRootCommand_PassedFile(t *testing.T) {
	path := writeTestFile(t, "scan.png", []byte{0x89, 0x50, 0x4E, 0x47})

	out, err := runCommand(t, path)
	if code := exitCode(err); code != 0 {
		t.Fatalf("expected exit code 0, got %d (err %v)", code, err)
	}
	if !strings.Contains(out, "Status: PASSED") {
		t.Errorf("output missing passed status:\n%s", out)
	}
	if !strings.Contains(out, "Analysis Method: Basic Validation") {
		t.Errorf("default method must be basic:\n%s", out)
	}
}

func TestRootCommand_MissingFileExitCode(t *testing.T) {
	_, err := runCommand(t, filepath.Join(t.TempDir(), "absent.png"))
	if code := exitCode(err); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestRootCommand_WarningExitCode(t *testing.T) {
	path := writeTestFile(t, "notes.txt", []byte("plain text"))

	out, err := runCommand(t, path)
	if code := exitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(out, "Status: WARNING") {
		t.Errorf("output missing warning status:\n%s", out)
	}
}

func TestRootCommand_UnknownMethod(t *testing.T) {
	path := writeTestFile(t, "scan.png", []byte("x"))

	_, err := runCommand(t, "-m", "bogus", path)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	var ee *exitError
	if errors.As(err, &ee) {
		t.Fatal("unknown method must surface as a usage error, not an exit status")
	}
	if !strings.Contains(err.Error(), "unsupported method") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootCommand_AzureWithoutCredentials(t *testing.T) {
	// Make sure ambient credentials do not leak into the test.
	t.Setenv("AZURE_VISION_ENDPOINT", "")
	t.Setenv("AZURE_VISION_KEY", "")

	path := writeTestFile(t, "scan.png", []byte("x"))

	out, err := runCommand(t, "-m", "azure", path)
	if code := exitCode(err); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "Azure credentials not configured") {
		t.Errorf("output missing credentials error:\n%s", out)
	}
}

func TestRootCommand_JSONOutput(t *testing.T) {
	path := writeTestFile(t, "scan.png", []byte{0x89, 0x50, 0x4E, 0x47})

	out, err := runCommand(t, "--json", path)
	if code := exitCode(err); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var result models.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if result.Status != models.StatusPassed {
		t.Errorf("status = %s", result.Status)
	}
	if result.Method == "" || result.FilePath == "" {
		t.Errorf("identity fields missing: %+v", result)
	}
}

func TestRootCommand_RequiresFileArgument(t *testing.T) {
	_, err := runCommand(t)
	if err == nil {
		t.Fatal("expected error when no file argument is given")
	}
}
