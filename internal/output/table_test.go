package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/output"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func renderToString(findings []models.Finding, opts output.TableOptions) string {
	var buf bytes.Buffer
	output.RenderTable(&buf, findings, opts)
	return buf.String()
}

func oneFinding(overrides ...func(*models.Finding)) models.Finding {
	f := models.Finding{
		ResourceID:   "sg-0123456789abcdef0",
		ResourceName: "web",
		ResourceType: models.ResourceSecurityGroup,
		Category:     models.CategoryNetwork,
		Region:       "eu-north-1",
		Profile:      "prod",
		RuleID:       "SSH_OPEN_TO_WORLD",
		Status:       models.StatusMisconfig,
		Severity:     models.SeverityHigh,
		Explanation:  "SSH (22) is open to the world (0.0.0.0/0)",
	}
	for _, fn := range overrides {
		fn(&f)
	}
	return f
}

// ── columns ───────────────────────────────────────────────────────────────────

func TestRenderTable_DefaultColumns(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	for _, col := range []string{"RESOURCE ID", "REGION", "STATUS", "SEVERITY", "RULE", "MESSAGE"} {
		if !strings.Contains(out, col) {
			t.Errorf("expected %s column header\ngot:\n%s", col, out)
		}
	}
	if strings.Contains(out, "CATEGORY") {
		t.Errorf("CATEGORY column must be opt-in\ngot:\n%s", out)
	}
	if !strings.Contains(out, "SSH_OPEN_TO_WORLD") || !strings.Contains(out, "MISCONFIG") {
		t.Errorf("expected rule and status values\ngot:\n%s", out)
	}
}

func TestRenderTable_CategoryColumn(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{IncludeCategory: true})
	if !strings.Contains(out, "CATEGORY") || !strings.Contains(out, "network") {
		t.Errorf("expected CATEGORY column with value\ngot:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	out := renderToString(nil, output.TableOptions{})
	if strings.TrimSpace(out) != "No findings." {
		t.Errorf("got %q; want %q", out, "No findings.")
	}
}

func TestRenderTable_ProblemsOnly(t *testing.T) {
	findings := []models.Finding{
		oneFinding(func(f *models.Finding) {
			f.ResourceID = "sg-ok"
			f.Status = models.StatusOK
			f.Severity = models.SeverityInfo
		}),
		oneFinding(),
	}
	out := renderToString(findings, output.TableOptions{ProblemsOnly: true})
	if strings.Contains(out, "sg-ok") {
		t.Errorf("OK finding must be hidden\ngot:\n%s", out)
	}
	out = renderToString(findings[:1], output.TableOptions{ProblemsOnly: true})
	if strings.TrimSpace(out) != "No findings." {
		t.Errorf("only-OK input must render as empty; got %q", out)
	}
}

func TestRenderTable_KeepsOrder(t *testing.T) {
	findings := []models.Finding{
		oneFinding(func(f *models.Finding) { f.ResourceID = "zeta"; f.Severity = models.SeverityLow }),
		oneFinding(func(f *models.Finding) { f.ResourceID = "alpha"; f.Severity = models.SeverityCritical }),
	}
	out := renderToString(findings, output.TableOptions{})
	if strings.Index(out, "zeta") > strings.Index(out, "alpha") {
		t.Errorf("rows must follow finding order\ngot:\n%s", out)
	}
}

// ── colour ────────────────────────────────────────────────────────────────────

func TestRenderTable_NoANSIByDefault(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncoloured table must not contain ANSI codes\ngot:\n%q", out)
	}
}

func TestRenderTable_Colored(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{Colored: true})
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("coloured table must contain ANSI codes\ngot:\n%q", out)
	}
}

func TestRenderTable_ColoredRowsStayAligned(t *testing.T) {
	// The MESSAGE column must start at the same visible offset with and
	// without colour.
	plain := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	colored := renderToString([]models.Finding{oneFinding()}, output.TableOptions{Colored: true})
	stripped := stripANSI(colored)
	if stripped != plain {
		t.Errorf("stripped coloured output differs from plain\nplain:\n%s\nstripped:\n%s", plain, stripped)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ── ShortenMessage ────────────────────────────────────────────────────────────

func TestShortenMessage(t *testing.T) {
	cases := []struct {
		msg  string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 2, "a..."},
		{"Säkerhetsgrupp öppen", 8, "Säker..."},
	}
	for _, tc := range cases {
		if got := output.ShortenMessage(tc.msg, tc.max); got != tc.want {
			t.Errorf("ShortenMessage(%q, %d): got %q; want %q", tc.msg, tc.max, got, tc.want)
		}
	}
}
