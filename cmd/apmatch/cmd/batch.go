package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/apmatch"
	"github.com/agentstation/apmatch/internal/config"
	"github.com/agentstation/apmatch/pkg/documents"
	"github.com/agentstation/apmatch/pkg/errors"
	"github.com/agentstation/apmatch/pkg/logging"
)

var (
	manifestFile string
	workerCount  int
)

// manifestEntry is one invoice / purchase order pairing in a batch
// manifest file.
type manifestEntry struct {
	Invoice string `yaml:"invoice" json:"invoice"`
	PO      string `yaml:"po" json:"po"`
}

// batchOutcome is the per-pair line item of the batch report.
type batchOutcome struct {
	Invoice string `json:"invoice"`
	PO      string `json:"po"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate many invoice and purchase order pairs",
	Long: `Batch validates a list of document pairs concurrently.

The manifest is a YAML file listing the pairs to validate:

  - invoice: invoices/inv-001.yaml
    po: pos/po-001.yaml
  - invoice: invoices/inv-002.yaml
    po: pos/po-002.yaml

The exit code is 0 when every invoice is approved, 1 when any needs
review, and 2 on input or configuration errors.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&manifestFile, "manifest", "", "path to the batch manifest file (required)")
	batchCmd.Flags().IntVar(&workerCount, "workers", 0, "number of concurrent workers (default from config)")

	_ = batchCmd.MarkFlagRequired("manifest")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}
	if profile != "" {
		appCfg.Profile = profile
	}
	engineCfg, err := appCfg.ValidateConfig()
	if err != nil {
		return err
	}

	workers := appCfg.Workers
	if workerCount > 0 {
		workers = workerCount
	}

	entries, err := loadManifest(manifestFile)
	if err != nil {
		return err
	}

	m, err := apmatch.New(
		apmatch.WithConfig(engineCfg),
		apmatch.WithLogger(*logging.Default()),
		apmatch.WithWorkers(workers),
	)
	if err != nil {
		return err
	}

	pairs := make([]apmatch.Pair, len(entries))
	outcomes := make([]batchOutcome, len(entries))
	for i, entry := range entries {
		outcomes[i] = batchOutcome{Invoice: entry.Invoice, PO: entry.PO}

		inv, err := documents.LoadInvoice(entry.Invoice)
		if err != nil {
			outcomes[i].Status = "ERROR"
			outcomes[i].Error = err.Error()
			continue
		}
		po, err := documents.LoadPurchaseOrder(entry.PO)
		if err != nil {
			outcomes[i].Status = "ERROR"
			outcomes[i].Error = err.Error()
			continue
		}
		pairs[i] = apmatch.Pair{Invoice: inv, PO: po}
	}

	results := m.ValidatePairs(cmd.Context(), pairs)

	reviewed := false
	failed := false
	for i, r := range results {
		if outcomes[i].Status == "ERROR" {
			failed = true
			continue
		}
		if r.Err != nil {
			outcomes[i].Status = "ERROR"
			outcomes[i].Error = r.Err.Error()
			failed = true
			continue
		}
		outcomes[i].Status = string(r.Result.Status)
		outcomes[i].Summary = r.Result.Summary()
		if !r.Result.IsApproved() {
			reviewed = true
		}
	}

	if err := printOutcomes(outcomes); err != nil {
		return err
	}

	switch {
	case failed:
		return &exitCodeError{code: exitError}
	case reviewed:
		return &exitCodeError{code: exitReview}
	default:
		return nil
	}
}

// loadManifest reads and decodes a batch manifest file.
func loadManifest(path string) ([]manifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}

	var entries []manifestEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewParseError("yaml", path, err.Error(), err)
	}
	if len(entries) == 0 {
		return nil, errors.NewValidationError("manifest", "", "manifest lists no document pairs")
	}
	for i, entry := range entries {
		if entry.Invoice == "" || entry.PO == "" {
			return nil, errors.NewValidationError("manifest", fmt.Sprintf("[%d]", i), "entry needs both invoice and po paths")
		}
	}
	return entries, nil
}

// printOutcomes writes the batch report in the selected output format.
func printOutcomes(outcomes []batchOutcome) error {
	switch outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	default:
		for _, o := range outcomes {
			if o.Error != "" {
				fmt.Printf("%-8s %s / %s: %s\n", o.Status, o.Invoice, o.PO, o.Error)
				continue
			}
			fmt.Printf("%-8s %s / %s: %s\n", o.Status, o.Invoice, o.PO, o.Summary)
		}
		return nil
	}
}
