package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crosswatch-systems/crosswatch/internal/config"
	"github.com/crosswatch-systems/crosswatch/internal/correlation"
	"github.com/crosswatch-systems/crosswatch/internal/export"
	"github.com/crosswatch-systems/crosswatch/internal/models"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <snapshot.json>",
	Short: "Run the correlation engine over a snapshot file",
	Long: `Reads a JSON array of events from the given file, runs every
analysis pass, and prints the report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args[0])
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "table", "output format: table, json, markdown")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(path string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	engine := correlation.New(cfg.Engine)
	report := engine.Analyze(context.Background(), events)
	signals := engine.ProjectSignals(report)

	switch analyzeOutput {
	case "json":
		out, err := json.MarshalIndent(map[string]interface{}{
			"report":  report,
			"signals": signals,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(out))
	case "markdown":
		os.Stdout.Write(export.ReportMarkdown(report))
	case "table":
		printReportTable(report, signals)
	default:
		return fmt.Errorf("unknown output format: %s", analyzeOutput)
	}
	return nil
}

func printReportTable(report *models.Report, signals []models.Signal) {
	fmt.Printf("Events analyzed: %d\n\n", report.EventCount)
	fmt.Printf("%-22s %s\n", "Temporal correlations:", countBySignificance(report.Temporal))
	fmt.Printf("%-22s %s\n", "Spatial correlations:", countBySignificance(report.Spatial))
	fmt.Printf("%-22s %s\n", "Thematic correlations:", countBySignificance(report.Thematic))
	fmt.Printf("%-22s %s\n", "Cascade chains:", countBySignificance(report.Cascades))
	fmt.Printf("%-22s %d\n", "Recurring patterns:", len(report.Patterns))
	fmt.Printf("%-22s %d\n", "Geographic clusters:", len(report.Clusters))
	fmt.Printf("%-22s %d\n\n", "Signals projected:", len(signals))

	for _, sig := range signals {
		fmt.Printf("  [%s] %s (score %d): %s\n", sig.Severity, sig.Type, sig.Score, sig.Description)
	}
}

func countBySignificance(results []models.CorrelationResult) string {
	var high, medium, low int
	for _, r := range results {
		switch r.Significance {
		case models.SignificanceHigh:
			high++
		case models.SignificanceMedium:
			medium++
		default:
			low++
		}
	}
	return fmt.Sprintf("%d (high %d, medium %d, low %d)", len(results), high, medium, low)
}
