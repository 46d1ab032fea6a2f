package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/apmatch"
	"github.com/agentstation/apmatch/internal/config"
	"github.com/agentstation/apmatch/pkg/documents"
	"github.com/agentstation/apmatch/pkg/logging"
	"github.com/agentstation/apmatch/pkg/validate"
)

var (
	invoiceFile   string
	poFile        string
	profile       string
	alwaysApprove bool
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an invoice against its purchase order",
	Long: `Validate reconciles one invoice file against one purchase order file
and reports the result.

Documents are YAML or JSON files. The exit code is 0 when the invoice
is approved, 1 when it needs human review, and 2 on input or
configuration errors.

Examples:
  apmatch validate --invoice invoice.yaml --po po.yaml
  apmatch validate --invoice invoice.yaml --po po.yaml --profile strict
  apmatch validate --invoice invoice.yaml --po po.yaml -o json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&invoiceFile, "invoice", "", "path to the invoice file (required)")
	validateCmd.Flags().StringVar(&poFile, "po", "", "path to the purchase order file (required)")
	validateCmd.Flags().StringVar(&profile, "profile", "", "tolerance profile (default, strict, relaxed)")
	validateCmd.Flags().BoolVar(&alwaysApprove, "always-approve", false, "approve regardless of findings, preserving issues for audit")

	_ = validateCmd.MarkFlagRequired("invoice")
	_ = validateCmd.MarkFlagRequired("po")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	engineCfg, err := engineConfig()
	if err != nil {
		return err
	}

	inv, err := documents.LoadInvoice(invoiceFile)
	if err != nil {
		return err
	}
	po, err := documents.LoadPurchaseOrder(poFile)
	if err != nil {
		return err
	}

	m, err := apmatch.New(
		apmatch.WithConfig(engineCfg),
		apmatch.WithLogger(*logging.Default()),
	)
	if err != nil {
		return err
	}

	result, err := m.Validate(cmd.Context(), inv, po)
	if err != nil {
		return err
	}

	if err := printResult(result); err != nil {
		return err
	}

	if !result.IsApproved() {
		return &exitCodeError{code: exitReview}
	}
	return nil
}

// engineConfig builds the engine configuration from config file,
// environment, and command flags.
func engineConfig() (*validate.Config, error) {
	appCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if profile != "" {
		appCfg.Profile = profile
	}
	if alwaysApprove {
		appCfg.AlwaysApprove = true
	}
	return appCfg.ValidateConfig()
}

// printResult writes the result in the selected output format.
func printResult(result *validate.Result) error {
	switch outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		if quiet {
			fmt.Println(result.Summary())
			return nil
		}
		fmt.Print(result.Report())
		return nil
	}
}
