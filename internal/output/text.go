package output

import (
	"fmt"
	"io"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// categorySection holds the fixed text of one category in the text report.
type categorySection struct {
	title string
	empty string
}

var sections = map[models.Category]categorySection{
	models.CategoryStorage:  {title: "S3 Bucket Checks", empty: "No S3 buckets found."},
	models.CategoryDatabase: {title: "RDS Instance Checks", empty: "No RDS DB instances found."},
	models.CategoryNetwork:  {title: "Security Group Checks", empty: "No Security Groups found."},
}

// TextReporter writes the human-readable scan log. It can be driven
// incrementally, one category at a time, while a scan runs:
//
//	Starting AWS security misconfiguration scan...
//
//	=== S3 Bucket Checks ===
//
//	Bucket: logs
//	  [OK] Bucket is not publicly accessible
//	  ...
//
//	Scan complete.
type TextReporter struct {
	w   io.Writer
	pal palette
}

// NewTextReporter returns a reporter writing to w.
func NewTextReporter(w io.Writer, colored bool) *TextReporter {
	return &TextReporter{w: w, pal: newPalette(colored)}
}

// Begin writes the start banner.
func (r *TextReporter) Begin() {
	fmt.Fprintln(r.w, "Starting AWS security misconfiguration scan...")
}

// Category writes one category section. Warnings are printed inline at the
// top of the section; findings are grouped by resource in the given order.
// resources is the number of descriptors evaluated; the "none found" line
// is only printed when it is zero.
func (r *TextReporter) Category(c models.Category, resources int, findings []models.Finding, warnings []models.Warning) {
	sec, ok := sections[c]
	if !ok {
		sec = categorySection{title: string(c), empty: "No resources found."}
	}
	fmt.Fprintf(r.w, "\n%s\n", r.pal.header.Sprintf("=== %s ===", sec.title))

	listFailed := false
	for _, w := range warnings {
		if w.Kind == models.WarningListUnavailable {
			listFailed = true
		}
		fmt.Fprintf(r.w, "%s %s\n", r.pal.warning.Sprint("[WARNING]"), w.Message)
	}

	if len(findings) == 0 {
		switch {
		case listFailed:
		case resources == 0:
			fmt.Fprintln(r.w, sec.empty)
		default:
			fmt.Fprintf(r.w, "All findings for %d resource(s) were filtered by policy.\n", resources)
		}
		return
	}

	var current string
	for i, f := range findings {
		if i == 0 || f.ResourceID != current {
			current = f.ResourceID
			fmt.Fprintf(r.w, "\n%s\n", resourceHeading(f))
		}
		label := r.pal.status(f.Status).Sprintf("[%s]", f.Status)
		fmt.Fprintf(r.w, "  %s %s\n", label, f.Explanation)
	}
}

// End writes the completion banner.
func (r *TextReporter) End() {
	fmt.Fprintln(r.w, "\nScan complete.")
}

// RenderText writes a complete report in the text layout.
func RenderText(w io.Writer, report *models.AuditReport, colored bool) {
	r := NewTextReporter(w, colored)
	r.Begin()
	for _, c := range report.Categories {
		r.Category(c, report.Resources[c], report.FindingsFor(c), report.WarningsFor(c))
	}
	r.End()
}

func resourceHeading(f models.Finding) string {
	switch f.ResourceType {
	case models.ResourceS3Bucket:
		return "Bucket: " + f.ResourceID
	case models.ResourceRDS:
		return "DB Instance: " + f.ResourceID
	case models.ResourceSecurityGroup:
		if f.ResourceName == "" {
			return "Security Group: " + f.ResourceID
		}
		return fmt.Sprintf("Security Group: %s (%s)", f.ResourceName, f.ResourceID)
	default:
		return string(f.ResourceType) + ": " + f.ResourceID
	}
}
