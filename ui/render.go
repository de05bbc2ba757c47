package ui

import (
	"fmt"
	"strings"

	"github.com/doitintl/idlegw/internal/metrics"
	"github.com/doitintl/idlegw/internal/report"
	"github.com/doitintl/idlegw/pkg/types"
)

// RenderSummary renders the post-run summary for the terminal, one block
// per gateway.
func RenderSummary(r *report.Report, failures []metrics.Failure) string {
	var b strings.Builder

	b.WriteString(sectionHeader("Gateway Analysis Summary"))
	b.WriteString(infoStyle.Render(fmt.Sprintf("Account: %s  |  Region: %s  |  Lookback: %d days",
		r.AccountID, r.Region, r.LookbackDays)))
	b.WriteString("\n")

	for _, s := range r.Summaries {
		b.WriteString("\n")
		b.WriteString(highlightStyle.Render(fmt.Sprintf("%s Gateway: %s (%s)", s.GatewayType, s.GatewayName, s.GatewayID)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  VPC: %s (%s)\n", s.VPCName, s.VPCID))

		idle := fmt.Sprintf("  Idle: %.2f%% (%d of %d periods)", s.IdlePercentage, s.IdlePeriods, s.TotalPeriods)
		if s.IdlePercentage >= 99.5 {
			b.WriteString(warningStyle.Render(idle))
		} else {
			b.WriteString(idle)
		}
		b.WriteString("\n")

		b.WriteString(fmt.Sprintf("  Traffic: %s bytes in / %s bytes out\n",
			formatCount(s.TotalBytesIn), formatCount(s.TotalBytesOut)))
		b.WriteString(fmt.Sprintf("  Packets: %s in / %s out\n",
			formatCount(s.TotalPacketsIn), formatCount(s.TotalPacketsOut)))
		b.WriteString(fmt.Sprintf("  Avg rates: %s B/s, %s pkt/s\n",
			formatRate(s.BytesPerSecondAvg), formatRate(s.PacketsPerSecondAvg)))

		switch s.GatewayType {
		case types.KindNAT:
			b.WriteString(fmt.Sprintf("  Connections: %s attempts, %s timeouts, %s port errors\n",
				formatCount(s.TotalConnectionAttempts), formatCount(s.TotalConnectionTimeouts),
				formatCount(s.PortAllocationErrors)))
			b.WriteString(fmt.Sprintf("  Active connections: max %s, avg %s\n",
				formatCount(s.MaxActiveConnections), formatRate(s.AvgActiveConnections)))
		case types.KindIGW:
			status := successStyle.Render(s.Status)
			if s.Status == "Inactive" {
				status = warningStyle.Render(s.Status)
			}
			b.WriteString(fmt.Sprintf("  Status: %s\n", status))
			b.WriteString(fmt.Sprintf("  Drops: %s blackhole bytes, %s no-route bytes\n",
				formatCount(s.BlackholeDropBytes), formatCount(s.NoRouteDropBytes)))
		}
	}

	if len(failures) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d gateway(s) failed:", len(failures))))
		b.WriteString("\n")
		for _, f := range failures {
			b.WriteString(fmt.Sprintf("  ✗ %s: %v\n", f.Gateway.ID, f.Err))
		}
	}

	return b.String()
}

func sectionHeader(title string) string {
	line := strings.Repeat("─", 60)
	return stepStyle.Render(line) + "\n" + stepStyle.Render(title) + "\n" + stepStyle.Render(line) + "\n"
}
