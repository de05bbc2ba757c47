package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/doitintl/idlegw/internal/core"
	"github.com/doitintl/idlegw/internal/metrics"
	"github.com/doitintl/idlegw/internal/report"
	"github.com/doitintl/idlegw/pkg/types"
	"github.com/doitintl/idlegw/ui"
	"github.com/spf13/cobra"
)

var (
	region     string
	profile    string
	days       int
	output     string
	gatewayIDs []string
	plain      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze gateway idle time from CloudWatch metrics",
	Long: `Collects traffic and error metrics for all NAT and Internet Gateways over
the lookback window, computes per-gateway idle percentages and traffic
totals, and writes an Excel workbook with a summary sheet plus one detail
sheet per gateway.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (required)")
	analyzeCmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS CLI profile name")
	analyzeCmd.Flags().IntVarP(&days, "days", "d", metrics.DefaultLookbackDays, "Number of days to look back")
	analyzeCmd.Flags().StringVarP(&output, "output", "o", "", "Output Excel file path (default: gateway_analysis_<account>_<region>_<timestamp>.xlsx)")
	analyzeCmd.Flags().StringSliceVar(&gatewayIDs, "gateway-ids", []string{}, "Specific gateway IDs to analyze (optional)")
	analyzeCmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive progress view")
	analyzeCmd.MarkFlagRequired("region")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if days <= 0 {
		return fmt.Errorf("days must be positive, got %d", days)
	}

	scanner, err := core.NewScanner(ctx, region, profile)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	fmt.Printf("Analyzing gateways for Account: %s, Region: %s\n", scanner.GetAccountID(), region)

	gateways, err := scanner.DiscoverGateways(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover gateways: %w", err)
	}
	gateways = filterGateways(gateways, gatewayIDs)
	if len(gateways) == 0 {
		fmt.Println("No gateways found in this region.")
		return nil
	}

	var result *metrics.Result
	if plain {
		result, err = scanner.Analyze(ctx, gateways, days, func(e metrics.Event) {
			if e.Err != nil {
				fmt.Printf("  [%d/%d] %s (%s): %v\n", e.Done, e.Total, e.Gateway.Name, e.Gateway.ID, e.Err)
				return
			}
			fmt.Printf("  [%d/%d] Collected metrics for %s Gateway: %s (%s)\n",
				e.Done, e.Total, e.Gateway.Kind, e.Gateway.Name, e.Gateway.ID)
		})
	} else {
		result, err = ui.RunAnalysis(ctx, scanner, gateways, days)
	}
	if err != nil {
		return err
	}

	rep := report.New(region, scanner.GetAccountID(), days, result.Summaries, result.Samples)

	path := output
	if path == "" {
		path = report.DefaultOutputPath(scanner.GetAccountID(), region, time.Now())
	}
	if err := saveReport(rep, path); err != nil {
		return err
	}

	fmt.Println(ui.RenderSummary(rep, result.Failures))
	fmt.Printf("\nDetailed analysis saved to: %s\n", path)

	if len(result.Failures) > 0 {
		return fmt.Errorf("%d of %d gateways failed", len(result.Failures), len(gateways))
	}
	return nil
}

func saveReport(rep *report.Report, path string) error {
	switch {
	case strings.HasSuffix(path, ".json"):
		return rep.SaveJSON(path)
	case strings.HasSuffix(path, ".md"):
		return rep.SaveMarkdown(path)
	default:
		return rep.SaveExcel(path)
	}
}

func filterGateways(gateways []types.Gateway, ids []string) []types.Gateway {
	if len(ids) == 0 {
		return gateways
	}
	var filtered []types.Gateway
	for _, gw := range gateways {
		if slices.Contains(ids, gw.ID) {
			filtered = append(filtered, gw)
		}
	}
	return filtered
}
