package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/output"
)

func TestRenderJSON_StatusAndOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := output.RenderJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var decoded struct {
		Findings []struct {
			ResourceID string `json:"resource_id"`
			Status     string `json:"status"`
		} `json:"findings"`
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Findings) != 4 {
		t.Fatalf("findings: got %d; want 4", len(decoded.Findings))
	}
	if decoded.Findings[2].Status != "UNKNOWN" {
		t.Errorf("findings[2].status: got %q; want UNKNOWN", decoded.Findings[2].Status)
	}
	if decoded.Findings[3].ResourceID != "sg-1" {
		t.Errorf("findings[3].resource_id: got %q; want sg-1", decoded.Findings[3].ResourceID)
	}
	if len(decoded.Warnings) != 1 || decoded.Warnings[0].Kind != string(models.WarningListUnavailable) {
		t.Errorf("warnings: got %+v", decoded.Warnings)
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := output.WriteJSONFile(path, sampleReport()); err != nil {
		t.Fatalf("WriteJSONFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var report models.AuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if report.AccountID != "111122223333" {
		t.Errorf("account_id: got %q", report.AccountID)
	}
}

func TestWriteJSONFile_BadPath(t *testing.T) {
	err := output.WriteJSONFile(filepath.Join(t.TempDir(), "missing", "report.json"), sampleReport())
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
