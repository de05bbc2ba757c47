package metrics

import (
	"fmt"

	"github.com/doitintl/idlegw/pkg/types"
)

// BuildSummary attaches derived totals and average rates to a gateway's
// aggregated statistics and assembles the final summary row. Pure; the only
// failure modes are malformed input.
//
// The rate denominator is clamped to one second when no periods were
// observed, the same zero-period guard the idle percentage uses.
func BuildSummary(accountID, region string, gw types.Gateway, stats types.GatewayStats) (types.AnalysisSummary, error) {
	if gw.Kind != types.KindNAT && gw.Kind != types.KindIGW {
		return types.AnalysisSummary{}, fmt.Errorf("gateway %s: unknown kind %q", gw.ID, gw.Kind)
	}
	if stats.TotalPeriods < 0 || stats.IdlePeriods < 0 {
		return types.AnalysisSummary{}, fmt.Errorf("gateway %s: negative period count", gw.ID)
	}
	if stats.IdlePeriods > stats.TotalPeriods {
		return types.AnalysisSummary{}, fmt.Errorf("gateway %s: %d idle periods exceed %d total",
			gw.ID, stats.IdlePeriods, stats.TotalPeriods)
	}

	totalBytes := stats.BytesIn + stats.BytesOut
	totalPackets := stats.PacketsIn + stats.PacketsOut

	seconds := float64(stats.TotalPeriods) * PeriodSeconds
	if seconds < 1 {
		seconds = 1
	}

	s := types.AnalysisSummary{
		AccountID: accountID,
		Region:    region,
		VPCID:     gw.VPCID,
		VPCName:   gw.VPCName,

		GatewayType: gw.Kind,
		GatewayID:   gw.ID,
		GatewayName: gw.Name,

		TotalPeriods:   stats.TotalPeriods,
		IdlePeriods:    stats.IdlePeriods,
		IdlePercentage: stats.IdlePercentage,

		TotalBytesIn:    stats.BytesIn,
		TotalBytesOut:   stats.BytesOut,
		TotalPacketsIn:  stats.PacketsIn,
		TotalPacketsOut: stats.PacketsOut,

		TotalBytes:          totalBytes,
		TotalPackets:        totalPackets,
		BytesPerSecondAvg:   round2(totalBytes / seconds),
		PacketsPerSecondAvg: round2(totalPackets / seconds),
	}

	switch gw.Kind {
	case types.KindNAT:
		s.TotalConnectionAttempts = stats.ConnectionAttempts
		s.TotalConnectionTimeouts = stats.ConnectionTimeouts
		s.PortAllocationErrors = stats.PortAllocationErrors
		s.MaxActiveConnections = stats.MaxActiveConnections
		s.AvgActiveConnections = stats.AvgActiveConnections
	case types.KindIGW:
		s.BlackholeDropBytes = stats.BlackholeDropBytes
		s.NoRouteDropBytes = stats.NoRouteDropBytes
		s.BlackholeDropPackets = stats.BlackholeDropPackets
		s.NoRouteDropPackets = stats.NoRouteDropPackets
		s.Status = stats.Status
	}

	return s, nil
}
