package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// TableOptions controls which columns RenderTable renders and how status and
// severity are coloured.
type TableOptions struct {
	// Colored wraps status and severity labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// IncludeCategory adds a CATEGORY column.
	IncludeCategory bool

	// ProblemsOnly hides OK findings, leaving MISCONFIG and UNKNOWN.
	ProblemsOnly bool
}

// ShortenMessage truncates msg to at most max runes, appending "..." when truncated.
// max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// truncateField shortens s to at most max runes for ID/label columns.
// A single-char ellipsis replaces the last rune when truncation occurs.
func truncateField(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// padCell pads text to width and colours only the text, so trailing padding
// stays plain and columns align with or without ANSI support.
func padCell(text string, width int, c *color.Color) string {
	spaces := width - len([]rune(text))
	if spaces < 0 {
		spaces = 0
	}
	return c.Sprint(text) + strings.Repeat(" ", spaces)
}

// RenderTable writes a formatted findings table to w, in finding order.
// The separator line width is derived from the header row so all rows align.
//
// Column order:
//
//	RESOURCE ID  REGION  [CATEGORY]  STATUS  SEVERITY  RULE  MESSAGE
func RenderTable(w io.Writer, findings []models.Finding, opts TableOptions) {
	pal := newPalette(opts.Colored)

	var rows []models.Finding
	for _, f := range findings {
		if opts.ProblemsOnly && f.Status == models.StatusOK {
			continue
		}
		rows = append(rows, f)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	const (
		wResource = 30
		wRegion   = 12
		wCategory = 9
		wStatus   = 9
		wSeverity = 8
		wRule     = 28
		wMessage  = 55
	)

	var hb strings.Builder
	hb.WriteString(fmt.Sprintf("%-*s", wResource, "RESOURCE ID"))
	hb.WriteString(fmt.Sprintf("  %-*s", wRegion, "REGION"))
	if opts.IncludeCategory {
		hb.WriteString(fmt.Sprintf("  %-*s", wCategory, "CATEGORY"))
	}
	hb.WriteString(fmt.Sprintf("  %-*s", wStatus, "STATUS"))
	hb.WriteString(fmt.Sprintf("  %-*s", wSeverity, "SEVERITY"))
	hb.WriteString(fmt.Sprintf("  %-*s", wRule, "RULE"))
	hb.WriteString(fmt.Sprintf("  %-*s", wMessage, "MESSAGE"))
	header := strings.TrimRight(hb.String(), " ")

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, f := range rows {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wResource, truncateField(f.ResourceID, wResource)))
		rb.WriteString(fmt.Sprintf("  %-*s", wRegion, truncateField(f.Region, wRegion)))
		if opts.IncludeCategory {
			rb.WriteString(fmt.Sprintf("  %-*s", wCategory, string(f.Category)))
		}
		rb.WriteString("  " + padCell(string(f.Status), wStatus, pal.status(f.Status)))
		rb.WriteString("  " + padCell(string(f.Severity), wSeverity, pal.severity(f.Severity)))
		rb.WriteString(fmt.Sprintf("  %-*s", wRule, truncateField(f.RuleID, wRule)))
		rb.WriteString("  " + ShortenMessage(f.Explanation, wMessage))
		fmt.Fprintln(w, rb.String())
	}
}
