package policy

import (
	"testing"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func sampleFindings() []models.Finding {
	return []models.Finding{
		{RuleID: "PUBLIC_ACCESS", Category: models.CategoryStorage, Status: models.StatusMisconfig, Severity: models.SeverityHigh},
		{RuleID: "LOGGING_DISABLED", Category: models.CategoryStorage, Status: models.StatusOK, Severity: models.SeverityInfo},
		{RuleID: "DB_PUBLIC_ACCESS", Category: models.CategoryDatabase, Status: models.StatusMisconfig, Severity: models.SeverityHigh},
		{RuleID: "SSH_OPEN_TO_WORLD", Category: models.CategoryNetwork, Status: models.StatusMisconfig, Severity: models.SeverityHigh},
	}
}

func TestApplyPolicy_NoPolicy(t *testing.T) {
	in := sampleFindings()
	out := ApplyPolicy(in, nil)
	if len(out) != len(in) {
		t.Errorf("nil policy must pass findings through; got %d", len(out))
	}
}

func TestApplyPolicy_CategoryDisabled(t *testing.T) {
	cfg := &PolicyConfig{
		Categories: map[string]CategoryConfig{"storage": {Enabled: boolPtr(false)}},
	}
	out := ApplyPolicy(sampleFindings(), cfg)
	if len(out) != 2 {
		t.Fatalf("expected 2 findings after disabling storage; got %d", len(out))
	}
	for _, f := range out {
		if f.Category == models.CategoryStorage {
			t.Errorf("storage finding %s survived", f.RuleID)
		}
	}
}

func TestApplyPolicy_RuleDisabled(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{"SSH_OPEN_TO_WORLD": {Enabled: boolPtr(false)}},
	}
	out := ApplyPolicy(sampleFindings(), cfg)
	for _, f := range out {
		if f.RuleID == "SSH_OPEN_TO_WORLD" {
			t.Error("disabled rule must be dropped")
		}
	}
	if len(out) != 3 {
		t.Errorf("expected 3 findings; got %d", len(out))
	}
}

func TestApplyPolicy_SeverityOverrideOnlyMisconfig(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{
			"PUBLIC_ACCESS":    {Severity: "critical"},
			"LOGGING_DISABLED": {Severity: "HIGH"},
		},
	}
	out := ApplyPolicy(sampleFindings(), cfg)
	if out[0].Severity != models.SeverityCritical {
		t.Errorf("PUBLIC_ACCESS severity: got %q; want CRITICAL", out[0].Severity)
	}
	if out[1].Severity != models.SeverityInfo {
		t.Errorf("OK finding severity: got %q; want INFO", out[1].Severity)
	}
}

func TestApplyPolicy_PreservesOrder(t *testing.T) {
	cfg := &PolicyConfig{Rules: map[string]RuleConfig{"DB_PUBLIC_ACCESS": {Severity: "LOW"}}}
	out := ApplyPolicy(sampleFindings(), cfg)
	want := []string{"PUBLIC_ACCESS", "LOGGING_DISABLED", "DB_PUBLIC_ACCESS", "SSH_OPEN_TO_WORLD"}
	for i, id := range want {
		if out[i].RuleID != id {
			t.Errorf("position %d: got %q; want %q", i, out[i].RuleID, id)
		}
	}
}

func TestCategoryEnabled(t *testing.T) {
	cfg := &PolicyConfig{
		Categories: map[string]CategoryConfig{
			"database": {Enabled: boolPtr(false)},
			"network":  {Enabled: boolPtr(true)},
			"storage":  {},
		},
	}
	cases := map[models.Category]bool{
		models.CategoryStorage:  true,
		models.CategoryDatabase: false,
		models.CategoryNetwork:  true,
	}
	for c, want := range cases {
		if got := CategoryEnabled(cfg, c); got != want {
			t.Errorf("%s: got %v; want %v", c, got, want)
		}
	}
	if !CategoryEnabled(nil, models.CategoryDatabase) {
		t.Error("nil policy must enable every category")
	}
}

func TestRuleEnabled(t *testing.T) {
	cfg := &PolicyConfig{
		Rules: map[string]RuleConfig{
			"SSH_OPEN_TO_WORLD": {Enabled: boolPtr(false)},
			"DB_PUBLIC_ACCESS":  {Severity: "CRITICAL"},
		},
	}
	cases := map[string]bool{
		"SSH_OPEN_TO_WORLD": false,
		"DB_PUBLIC_ACCESS":  true,
		"PUBLIC_ACCESS":     true,
	}
	for id, want := range cases {
		if got := RuleEnabled(cfg, id); got != want {
			t.Errorf("%s: got %v; want %v", id, got, want)
		}
	}
	if !RuleEnabled(nil, "SSH_OPEN_TO_WORLD") {
		t.Error("nil policy must enable every rule")
	}
}
