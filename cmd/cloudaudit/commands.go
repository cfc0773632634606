package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/config"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/engine"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/output"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/policy"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/common"
	awssecurity "github.com/pankaj-dahiya-devops/cloud-audit/internal/providers/aws/security"
	secpack "github.com/pankaj-dahiya-devops/cloud-audit/internal/rulepacks/security"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/rules"
	"github.com/pankaj-dahiya-devops/cloud-audit/internal/version"
)

// defaultPolicyFile is picked up from the working directory when no
// --policy flag or config entry names a policy.
const defaultPolicyFile = "cloudaudit.yaml"

// newEngine builds the audit engine for a scan. Tests replace it.
var newEngine = func(reg rules.RuleRegistry, pol *policy.PolicyConfig) engine.Engine {
	return engine.NewAWSSecurityEngine(
		common.NewDefaultAWSClientProvider(),
		awssecurity.NewDefaultSecurityCollector(),
		reg,
		pol,
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cloudaudit",
		Short:         "Read-only AWS security misconfiguration auditor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Config file (default: ~/.config/cloud-audit/config.yaml)")
	root.AddCommand(newScanCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newScanCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Audit S3 buckets, RDS instances and security groups in one region",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.NewViperLoader(cfgPath, cmd.Flags()).Load()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			ctx := logger.WithContext(cmd.Context())

			reg := newRegistry()
			pol, err := loadPolicy(cfg.PolicyPath, reg)
			if err != nil {
				return err
			}

			colored := cfg.Output.Color && !noColor && !color.NoColor
			return runScan(ctx, newEngine(reg, pol), cmd.OutOrStdout(), cfg, pol, colored)
		},
	}

	cmd.Flags().String("profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().String("region", "", "AWS region to audit (default: profile region, else "+common.DefaultRegion+")")
	cmd.Flags().String("format", config.DefaultFormat, "Output format: text, table or json")
	cmd.Flags().String("output", "", "Also write the report to this file: text for .txt/.log, JSON otherwise")
	cmd.Flags().Bool("problems-only", false, "Hide OK findings in table output")
	cmd.Flags().String("policy", "", "Policy file (default: ./"+defaultPolicyFile+" when present)")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	return cmd
}

// runScan runs one audit and renders it to w in cfg.Output.Format. The text
// format is streamed category by category while the scan runs.
func runScan(ctx context.Context, eng engine.Engine, w io.Writer, cfg *config.Config, pol *policy.PolicyConfig, colored bool) error {
	opts := engine.AuditOptions{
		AuditType: engine.AuditTypeSecurity,
		Profile:   cfg.AWS.Profile,
		Region:    cfg.AWS.Region,
	}

	format := engine.ReportFormat(cfg.Output.Format)
	var text *output.TextReporter
	if format == engine.ReportFormatText {
		text = output.NewTextReporter(w, colored)
		opts.OnCategory = func(res engine.CategoryResult) {
			text.Category(res.Category, res.Resources, res.Findings, res.Warnings)
		}
		text.Begin()
	}

	report, err := eng.RunAudit(ctx, opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	switch format {
	case engine.ReportFormatText:
		text.End()
	case engine.ReportFormatTable:
		output.RenderSummary(w, report)
		fmt.Fprintln(w)
		output.RenderTable(w, report.Findings, output.TableOptions{
			Colored:         colored,
			IncludeCategory: true,
			ProblemsOnly:    cfg.Output.ProblemsOnly,
		})
	case engine.ReportFormatJSON:
		if err := output.RenderJSON(w, report); err != nil {
			return err
		}
	}

	if cfg.Output.File != "" {
		if err := output.WriteReportFile(cfg.Output.File, report); err != nil {
			return err
		}
		zerolog.Ctx(ctx).Debug().Str("path", cfg.Output.File).Msg("report written")
	}

	if policy.ShouldFail(report.Findings, pol) {
		return errPolicyFailed
	}
	return nil
}

// newRegistry returns a registry holding the default rule pack.
func newRegistry() *rules.DefaultRuleRegistry {
	reg := rules.NewDefaultRuleRegistry()
	for _, r := range secpack.New() {
		reg.Register(r)
	}
	return reg
}

// loadPolicy loads and validates the policy at path. An empty path falls
// back to defaultPolicyFile in the working directory; when that is absent
// too, no policy applies and nil is returned.
func loadPolicy(path string, reg rules.RuleRegistry) (*policy.PolicyConfig, error) {
	if path == "" {
		if _, err := os.Stat(defaultPolicyFile); err != nil {
			return nil, nil
		}
		path = defaultPolicyFile
	}
	pol, err := policy.LoadPolicy(path)
	if err != nil {
		return nil, err
	}
	if errs := policy.Validate(pol, rules.CheckIDs(reg)); len(errs) > 0 {
		return nil, fmt.Errorf("invalid policy %s: %w", path, errors.Join(errs...))
	}
	return pol, nil
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the checks run by scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			printRules(cmd.OutOrStdout(), newRegistry())
			return nil
		},
	}
}

// printRules writes one line per check in execution order.
func printRules(w io.Writer, reg rules.RuleRegistry) {
	fmt.Fprintf(w, "%-30s  %-9s  %-8s  %s\n", "RULE", "CATEGORY", "SEVERITY", "TITLE")
	for _, r := range reg.All() {
		for _, c := range r.Checks() {
			fmt.Fprintf(w, "%-30s  %-9s  %-8s  %s\n", c.ID, r.Category(), c.Severity, c.Title)
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}
