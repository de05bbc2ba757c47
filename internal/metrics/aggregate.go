package metrics

import (
	"math"

	"github.com/doitintl/idlegw/pkg/types"
)

// Aggregate computes the idle/traffic statistics for one gateway from its
// slice of the flat sample table. The whole computation is a single pass
// over the samples plus a pass over the distinct timestamps.
//
// A period (timestamp) counts as idle when at least one traffic-classified
// sample was observed there and every observed traffic-classified sample
// summed to zero. Traffic metrics missing at that timestamp are not
// required to be present, matching the upstream tool's accounting.
func Aggregate(kind types.GatewayKind, samples []types.MetricSample) types.GatewayStats {
	type periodTraffic struct {
		seen    bool
		nonZero bool
	}

	periods := make(map[int64]*periodTraffic)
	metricSums := make(map[string]float64)

	var (
		allZero      = true
		activeMax    float64
		activeAvgSum float64
		activeCount  int
	)

	for _, s := range samples {
		ts := s.Timestamp.Unix()
		pt, ok := periods[ts]
		if !ok {
			pt = &periodTraffic{}
			periods[ts] = pt
		}

		if IsTrafficMetric(s.Metric) {
			pt.seen = true
			if s.Sum != 0 {
				pt.nonZero = true
			}
		}
		if s.Sum != 0 {
			allZero = false
		}

		metricSums[s.Metric] += s.Sum

		// Active connections are a gauge: summing its Sum column is
		// meaningless, so track the per-sample Maximum and Average
		// statistics directly.
		if s.Metric == MetricActiveConnectionCount {
			if s.Maximum > activeMax {
				activeMax = s.Maximum
			}
			activeAvgSum += s.Average
			activeCount++
		}
	}

	stats := types.GatewayStats{TotalPeriods: len(periods)}
	for _, pt := range periods {
		if pt.seen && !pt.nonZero {
			stats.IdlePeriods++
		}
	}
	if stats.TotalPeriods > 0 {
		stats.IdlePercentage = round2(float64(stats.IdlePeriods) / float64(stats.TotalPeriods) * 100)
	}

	grouped := make(map[string]float64)
	for _, g := range sumGroupsFor(kind) {
		// Metrics absent from the table contribute zero, never an error.
		for _, m := range g.metrics {
			grouped[g.field] += metricSums[m]
		}
	}

	stats.BytesIn = grouped[fieldBytesIn]
	stats.BytesOut = grouped[fieldBytesOut]
	stats.PacketsIn = grouped[fieldPacketsIn]
	stats.PacketsOut = grouped[fieldPacketsOut]

	switch kind {
	case types.KindNAT:
		stats.ConnectionAttempts = grouped[fieldConnAttempts]
		stats.ConnectionTimeouts = grouped[fieldConnTimeouts]
		stats.PortAllocationErrors = grouped[fieldPortAllocErr]
		stats.MaxActiveConnections = activeMax
		if activeCount > 0 {
			stats.AvgActiveConnections = activeAvgSum / float64(activeCount)
		}
	case types.KindIGW:
		stats.BlackholeDropBytes = grouped[fieldDropBytesBH]
		stats.NoRouteDropBytes = grouped[fieldDropBytesNR]
		stats.BlackholeDropPackets = grouped[fieldDropPacketsBH]
		stats.NoRouteDropPackets = grouped[fieldDropPacketsNR]
		// Activity spans every metric for the gateway, not just the
		// traffic group: one nonzero drop counter makes it Active.
		if allZero {
			stats.Status = "Inactive"
		} else {
			stats.Status = "Active"
		}
	}

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
