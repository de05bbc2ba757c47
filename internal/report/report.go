package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/doitintl/idlegw/pkg/types"
)

// Report holds one analysis run ready for export.
type Report struct {
	GeneratedAt  time.Time               `json:"generated_at"`
	Region       string                  `json:"region"`
	AccountID    string                  `json:"account_id"`
	LookbackDays int                     `json:"lookback_days"`
	Summaries    []types.AnalysisSummary `json:"summaries"`
	Samples      []types.MetricSample    `json:"-"`
}

func New(region, accountID string, days int, summaries []types.AnalysisSummary, samples []types.MetricSample) *Report {
	return &Report{
		GeneratedAt:  time.Now(),
		Region:       region,
		AccountID:    accountID,
		LookbackDays: days,
		Summaries:    summaries,
		Samples:      samples,
	}
}

// DefaultOutputPath builds the conventional output file name.
func DefaultOutputPath(accountID, region string, now time.Time) string {
	return fmt.Sprintf("gateway_analysis_%s_%s_%s.xlsx", accountID, region, now.Format("20060102_150405"))
}

func (r *Report) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (r *Report) SaveMarkdown(path string) error {
	return os.WriteFile(path, []byte(r.ToMarkdown()), 0644)
}

func (r *Report) ToMarkdown() string {
	var b strings.Builder

	b.WriteString("# Idle Gateway Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s  \n", r.GeneratedAt.Format(time.RFC1123)))
	b.WriteString(fmt.Sprintf("**Region:** %s  \n", r.Region))
	b.WriteString(fmt.Sprintf("**Account:** %s  \n", r.AccountID))
	b.WriteString(fmt.Sprintf("**Lookback:** %d days\n\n", r.LookbackDays))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Gateway | Type | VPC | Idle % | Bytes In | Bytes Out | Pkts/s Avg |\n")
	b.WriteString("|---------|------|-----|--------|----------|-----------|------------|\n")
	for _, s := range r.Summaries {
		b.WriteString(fmt.Sprintf("| %s (%s) | %s | %s | %.2f%% | %.0f | %.0f | %.2f |\n",
			s.GatewayName, s.GatewayID, s.GatewayType, s.VPCName,
			s.IdlePercentage, s.TotalBytesIn, s.TotalBytesOut, s.PacketsPerSecondAvg))
	}
	b.WriteString("\n")

	for _, s := range r.Summaries {
		b.WriteString(fmt.Sprintf("## %s Gateway: %s (%s)\n\n", s.GatewayType, s.GatewayName, s.GatewayID))
		b.WriteString(fmt.Sprintf("- VPC: %s (%s)\n", s.VPCName, s.VPCID))
		b.WriteString(fmt.Sprintf("- Idle: %.2f%% (%d of %d periods)\n", s.IdlePercentage, s.IdlePeriods, s.TotalPeriods))
		b.WriteString(fmt.Sprintf("- Traffic: %.0f bytes in / %.0f bytes out\n", s.TotalBytesIn, s.TotalBytesOut))
		b.WriteString(fmt.Sprintf("- Packets: %.0f in / %.0f out\n", s.TotalPacketsIn, s.TotalPacketsOut))
		b.WriteString(fmt.Sprintf("- Avg rates: %.2f B/s, %.2f pkt/s\n", s.BytesPerSecondAvg, s.PacketsPerSecondAvg))

		switch s.GatewayType {
		case types.KindNAT:
			b.WriteString(fmt.Sprintf("- Connections: %.0f attempts, %.0f timeouts, %.0f port errors\n",
				s.TotalConnectionAttempts, s.TotalConnectionTimeouts, s.PortAllocationErrors))
			b.WriteString(fmt.Sprintf("- Active connections: max %.0f, avg %.2f\n",
				s.MaxActiveConnections, s.AvgActiveConnections))
		case types.KindIGW:
			b.WriteString(fmt.Sprintf("- Status: %s\n", s.Status))
			b.WriteString(fmt.Sprintf("- Drops: %.0f blackhole bytes, %.0f no-route bytes\n",
				s.BlackholeDropBytes, s.NoRouteDropBytes))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Generated by idlegw*\n")

	return b.String()
}
