package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// RenderJSON writes the report as indented JSON to w.
func RenderJSON(w io.Writer, report *models.AuditReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteJSONFile serialises report as indented JSON and writes it to path,
// creating or overwriting the file.
func WriteJSONFile(path string, report *models.AuditReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}
