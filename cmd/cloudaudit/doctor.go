package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/config"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/policy"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/rules"
)

// DoctorResult is the structured output of cloudaudit doctor. It can be
// serialised to JSON via --format=json or rendered as plain lines (default).
type DoctorResult struct {
	AWS struct {
		Profile     string `json:"profile,omitempty"`
		Region      string `json:"region,omitempty"`
		Credentials bool   `json:"credentials_ok"`
		AccountID   string `json:"account_id,omitempty"`
		Error       string `json:"error,omitempty"`
	} `json:"aws"`

	Policy struct {
		Path       string   `json:"path,omitempty"`
		Present    bool     `json:"present"`
		Valid      bool     `json:"valid"`
		Categories []string `json:"categories,omitempty"`
		Errors     []string `json:"errors,omitempty"`
	} `json:"policy"`

	OverallHealthy bool `json:"overall_healthy"`
}

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check AWS credentials and the policy file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.NewViperLoader(cfgPath, cmd.Flags()).Load()
			if err != nil {
				return err
			}
			ctx := newLogger(cmd.ErrOrStderr(), cfg.LogLevel).WithContext(cmd.Context())
			result, err := runDoctor(ctx, common.NewDefaultAWSClientProvider(), cmd.OutOrStdout(), format, cfg)
			if err != nil {
				return err
			}
			if !result.OverallHealthy {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().String("format", "text", `Output format: "text" or "json"`)
	cmd.Flags().String("profile", "", "AWS profile to use (default: credential chain)")
	cmd.Flags().String("region", "", "AWS region to check (default: profile region)")
	cmd.Flags().String("policy", "", "Policy file (default: ./"+defaultPolicyFile+" when present)")
	return cmd
}

// runDoctor collects all diagnostic results, renders them to w in the
// requested format, and returns the result.
// The returned error covers only rendering failures. Callers must inspect
// result.OverallHealthy to decide whether the environment is healthy.
func runDoctor(ctx context.Context, awsProvider common.AWSClientProvider, w io.Writer, format string, cfg *config.Config) (DoctorResult, error) {
	result := collectDoctorResult(ctx, awsProvider, cfg)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return result, fmt.Errorf("encode doctor result: %w", err)
		}
	default:
		renderDoctor(result, w)
	}
	return result, nil
}

// collectDoctorResult runs all environment checks and populates a DoctorResult.
func collectDoctorResult(ctx context.Context, awsProvider common.AWSClientProvider, cfg *config.Config) DoctorResult {
	var result DoctorResult

	// AWS: shared config → STS account ID. An empty profile selects the
	// default credential chain.
	result.AWS.Profile = cfg.AWS.Profile
	profileCfg, err := awsProvider.LoadProfile(ctx, cfg.AWS.Profile, cfg.AWS.Region)
	if err != nil {
		result.AWS.Error = err.Error()
	} else {
		result.AWS.Credentials = true
		result.AWS.AccountID = profileCfg.AccountID
		result.AWS.Region = profileCfg.Region
	}

	// Policy: stat → load → validate (file is optional).
	path := cfg.PolicyPath
	if path == "" {
		path = defaultPolicyFile
	}
	result.Policy.Path = path
	var pol *policy.PolicyConfig
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		result.Policy.Present = true
		pol, err = policy.LoadPolicy(path)
		if err != nil {
			result.Policy.Errors = []string{err.Error()}
			pol = nil
			break
		}
		errs := policy.Validate(pol, rules.CheckIDs(newRegistry()))
		for _, e := range errs {
			result.Policy.Errors = append(result.Policy.Errors, e.Error())
		}
		result.Policy.Valid = len(errs) == 0
	case cfg.PolicyPath != "" || !os.IsNotExist(statErr):
		// An explicitly named policy must exist; other stat errors mean
		// present but unreadable.
		result.Policy.Present = true
		result.Policy.Errors = []string{statErr.Error()}
	}
	for _, c := range enabledCategories(pol) {
		result.Policy.Categories = append(result.Policy.Categories, string(c))
	}

	result.OverallHealthy = result.AWS.Credentials &&
		(!result.Policy.Present || result.Policy.Valid)

	return result
}

// enabledCategories returns the categories a scan under pol would audit.
func enabledCategories(pol *policy.PolicyConfig) []models.Category {
	var out []models.Category
	for _, c := range models.Categories() {
		if policy.CategoryEnabled(pol, c) {
			out = append(out, c)
		}
	}
	return out
}

// renderDoctor writes the human-readable diagnostic output from result to w.
func renderDoctor(result DoctorResult, w io.Writer) {
	fmt.Fprintln(w, "Environment Diagnostics")

	if result.AWS.Profile != "" {
		fmt.Fprintf(w, "\nAWS (profile: %s):\n", result.AWS.Profile)
	} else {
		fmt.Fprintln(w, "\nAWS:")
	}
	if !result.AWS.Credentials {
		doctorPrint(w, "Credentials", "FAIL", result.AWS.Error)
		doctorPrint(w, "STS Identity", "FAIL", "skipped")
	} else {
		doctorPrint(w, "Credentials", "OK", "")
		doctorPrint(w, "STS Identity", "OK", "Account: "+result.AWS.AccountID)
		doctorPrint(w, "Region", "OK", result.AWS.Region)
	}

	fmt.Fprintln(w, "\nPolicy:")
	if !result.Policy.Present {
		doctorPrint(w, result.Policy.Path+" present", "Not found (optional)", "")
	} else {
		doctorPrint(w, result.Policy.Path+" present", "YES", "")
		if result.Policy.Valid {
			doctorPrint(w, "Policy valid", "OK", "")
		} else {
			for _, e := range result.Policy.Errors {
				doctorPrint(w, "Policy valid", "FAIL", e)
			}
		}
	}
	doctorPrint(w, "Categories", strings.Join(result.Policy.Categories, ", "), "")
}

// doctorPrint writes a single diagnostic check line to w.
// When detail is non-empty it is appended in parentheses.
func doctorPrint(w io.Writer, label, status, detail string) {
	if detail != "" {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, status, detail)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, status)
	}
}
