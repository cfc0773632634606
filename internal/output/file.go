package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// WriteReportFile writes report to path in a layout chosen by extension:
// .txt and .log get the plain text report, anything else gets JSON.
func WriteReportFile(path string, report *models.AuditReport) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".log":
		var buf bytes.Buffer
		RenderText(&buf, report, false)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write report file %q: %w", path, err)
		}
		return nil
	default:
		return WriteJSONFile(path, report)
	}
}
