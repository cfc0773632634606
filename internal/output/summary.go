package output

import (
	"fmt"
	"io"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// RenderSummary writes a compact account header with status and severity
// counts. Severity counts cover MISCONFIG findings only.
func RenderSummary(w io.Writer, report *models.AuditReport) {
	s := report.Summary

	fmt.Fprintf(w, "Account:  %s\n", report.AccountID)
	fmt.Fprintf(w, "Profile:  %s\n", report.Profile)
	fmt.Fprintf(w, "Region:   %s\n", report.Region)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d  (misconfig %d, unknown %d, ok %d)\n",
		s.TotalFindings, s.MisconfigFindings, s.UnknownFindings, s.OKFindings)
	if s.Warnings > 0 {
		fmt.Fprintf(w, "Warnings: %d\n", s.Warnings)
	}
	if s.MisconfigFindings == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Severity Breakdown")
	fmt.Fprintf(w, "  %-10s  %d\n", "CRITICAL", s.CriticalFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "HIGH", s.HighFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "MEDIUM", s.MediumFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "LOW", s.LowFindings)
}
