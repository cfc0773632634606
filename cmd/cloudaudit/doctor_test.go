package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/config"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
)

// ── AWS mock ──────────────────────────────────────────────────────────────────

type mockAWSProvider struct {
	profileResult *common.ProfileConfig
	profileErr    error
	lastProfile   string // records the profile name passed to LoadProfile
	lastRegion    string
}

func (m *mockAWSProvider) LoadProfile(_ context.Context, profile, region string) (*common.ProfileConfig, error) {
	m.lastProfile = profile
	m.lastRegion = region
	return m.profileResult, m.profileErr
}

func (m *mockAWSProvider) ConfigForRegion(_ *common.ProfileConfig, _ string) aws.Config {
	return aws.Config{}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func goodMockAWS() *mockAWSProvider {
	return &mockAWSProvider{
		profileResult: &common.ProfileConfig{
			AccountID: "123456789012",
			Region:    "eu-north-1",
		},
	}
}

func doctorConfig() *config.Config {
	return &config.Config{AWS: config.AWSConfig{Region: "eu-north-1"}}
}

// runDoctorInTmp runs runDoctor from a fresh temp directory (no policy file)
// and returns the captured output, the DoctorResult, and any rendering error.
func runDoctorInTmp(t *testing.T, awsP common.AWSClientProvider, format string, cfg *config.Config) (string, DoctorResult, error) {
	t.Helper()
	chdirTemp(t)
	var buf bytes.Buffer
	result, err := runDoctor(context.Background(), awsP, &buf, format, cfg)
	return buf.String(), result, err
}

// ── text format ───────────────────────────────────────────────────────────────

func TestDoctorAllOK(t *testing.T) {
	out, result, err := runDoctorInTmp(t, goodMockAWS(), "text", doctorConfig())
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}
	for _, want := range []string{
		"Credentials: OK",
		"STS Identity: OK (Account: 123456789012)",
		"Region: OK (eu-north-1)",
		"cloudaudit.yaml present: Not found (optional)",
		"Categories: storage, database, network",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q;\ngot:\n%s", want, out)
		}
	}
}

func TestDoctorAWSFailure(t *testing.T) {
	awsP := &mockAWSProvider{profileErr: errors.New("no valid credential sources")}
	out, result, err := runDoctorInTmp(t, awsP, "text", doctorConfig())
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}
	if !strings.Contains(out, "Credentials: FAIL (no valid credential sources)") {
		t.Errorf("output missing credential failure;\ngot:\n%s", out)
	}
	if !strings.Contains(out, "STS Identity: FAIL (skipped)") {
		t.Errorf("STS check must be skipped;\ngot:\n%s", out)
	}
}

func TestDoctorForwardsProfileAndRegion(t *testing.T) {
	awsP := goodMockAWS()
	cfg := doctorConfig()
	cfg.AWS.Profile = "audit"
	cfg.AWS.Region = "us-west-2"
	out, _, _ := runDoctorInTmp(t, awsP, "text", cfg)
	if awsP.lastProfile != "audit" || awsP.lastRegion != "us-west-2" {
		t.Errorf("LoadProfile got (%q, %q)", awsP.lastProfile, awsP.lastRegion)
	}
	if !strings.Contains(out, "AWS (profile: audit):") {
		t.Errorf("profile header missing;\ngot:\n%s", out)
	}
}

// ── policy checks ─────────────────────────────────────────────────────────────

func TestDoctorPolicyValid(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, defaultPolicyFile), "version: 1\ncategories:\n  database:\n    enabled: false\n")

	var buf bytes.Buffer
	result, err := runDoctor(context.Background(), goodMockAWS(), &buf, "text", doctorConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Policy.Present || !result.Policy.Valid {
		t.Errorf("policy: present=%v valid=%v errors=%v", result.Policy.Present, result.Policy.Valid, result.Policy.Errors)
	}
	if got := strings.Join(result.Policy.Categories, ","); got != "storage,network" {
		t.Errorf("categories: got %q; want storage,network", got)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}
}

func TestDoctorPolicyInvalid(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, defaultPolicyFile), "version: 1\nrules:\n  NOT_A_RULE:\n    severity: HIGH\n")

	var buf bytes.Buffer
	result, _ := runDoctor(context.Background(), goodMockAWS(), &buf, "text", doctorConfig())
	if result.OverallHealthy {
		t.Error("invalid policy must make the environment unhealthy")
	}
	if !strings.Contains(buf.String(), "Policy valid: FAIL (rules.NOT_A_RULE: unknown rule ID)") {
		t.Errorf("output missing validation error;\ngot:\n%s", buf.String())
	}
}

func TestDoctorExplicitPolicyMissing(t *testing.T) {
	cfg := doctorConfig()
	cfg.PolicyPath = filepath.Join(t.TempDir(), "absent.yaml")
	_, result, _ := runDoctorInTmp(t, goodMockAWS(), "text", cfg)
	if !result.Policy.Present || result.Policy.Valid {
		t.Errorf("explicit missing policy must be reported as invalid: %+v", result.Policy)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}
}

// ── JSON format ───────────────────────────────────────────────────────────────

func TestDoctorJSON(t *testing.T) {
	out, _, err := runDoctorInTmp(t, goodMockAWS(), "json", doctorConfig())
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	var decoded DoctorResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !decoded.AWS.Credentials || decoded.AWS.AccountID != "123456789012" {
		t.Errorf("aws: %+v", decoded.AWS)
	}
	if !decoded.OverallHealthy {
		t.Error("expected overall_healthy=true")
	}
}

func TestDoctorEmptyRegionReportsProfileRegion(t *testing.T) {
	awsP := goodMockAWS()
	_, result, err := runDoctorInTmp(t, awsP, "text", &config.Config{})
	if err != nil {
		t.Fatalf("runDoctor: %v", err)
	}
	if awsP.lastRegion != "" {
		t.Errorf("empty region must reach LoadProfile unchanged, got %q", awsP.lastRegion)
	}
	if result.AWS.Region != "eu-north-1" {
		t.Errorf("region: got %q; want the profile's eu-north-1", result.AWS.Region)
	}
}
