package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/doitintl/idlegw/pkg/types"
)

// Fixed collection parameters. CloudWatch reports gateway metrics at a
// 6-hour granularity and rejects overly long GetMetricStatistics ranges,
// hence the 30-day fetch chunks.
const (
	PeriodSeconds = 21600
	Period        = PeriodSeconds * time.Second
	MaxChunk      = 30 * 24 * time.Hour
)

// Datapoint is one raw statistics observation returned by the upstream
// metrics API. Absent statistics default to zero.
type Datapoint struct {
	Timestamp time.Time
	Sum       float64
	Average   float64
	Maximum   float64
	Minimum   float64
}

// Fetcher is the upstream metrics capability. FetchStatistics returns the
// datapoints for one (gateway, metric) pair over one sub-window, in
// chronological order. HasMetric reports whether the metric exists at all
// for the gateway; it is consulted only for Internet Gateways.
type Fetcher interface {
	FetchStatistics(ctx context.Context, gw types.Gateway, metric string, start, end time.Time) ([]Datapoint, error)
	HasMetric(ctx context.Context, gw types.Gateway, metric string) (bool, error)
}

// CollectMetric fetches all samples for one (gateway, metric) pair over
// [start, end), chunked to MaxChunk-sized windows.
//
// IGW metrics are probed first: many IGW metrics are never emitted at all,
// and for those a single synthetic zero sample at start keeps the pair
// represented in the table. The same zero-fill applies when the probe
// passes but every chunk comes back empty. NAT metrics are always fetched
// directly.
//
// A failed chunk aborts the whole pair; partial results are discarded so a
// fetch failure can never masquerade as observed idleness.
func CollectMetric(ctx context.Context, f Fetcher, gw types.Gateway, metric string, start, end time.Time) ([]types.MetricSample, error) {
	windows, err := Chunks(start, end, MaxChunk)
	if err != nil {
		return nil, fmt.Errorf("gateway %s metric %s: %w", gw.ID, metric, err)
	}

	if gw.Kind == types.KindIGW {
		exists, err := f.HasMetric(ctx, gw, metric)
		if err != nil {
			return nil, fmt.Errorf("gateway %s: probing metric %s: %w", gw.ID, metric, err)
		}
		if !exists {
			return []types.MetricSample{zeroSample(gw.ID, metric, start)}, nil
		}
	}

	var samples []types.MetricSample
	for w := range windows {
		points, err := f.FetchStatistics(ctx, gw, metric, w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("gateway %s: fetching %s over %s: %w", gw.ID, metric, w, err)
		}
		for _, dp := range points {
			samples = append(samples, types.MetricSample{
				GatewayID: gw.ID,
				Metric:    metric,
				Timestamp: dp.Timestamp,
				Sum:       dp.Sum,
				Average:   dp.Average,
				Maximum:   dp.Maximum,
				Minimum:   dp.Minimum,
			})
		}
	}

	if gw.Kind == types.KindIGW && len(samples) == 0 {
		samples = []types.MetricSample{zeroSample(gw.ID, metric, start)}
	}
	return samples, nil
}

// CollectGateway runs CollectMetric for every metric in the gateway's
// catalog and returns the concatenated sample table for that gateway.
func CollectGateway(ctx context.Context, f Fetcher, gw types.Gateway, start, end time.Time) ([]types.MetricSample, error) {
	catalog := CatalogFor(gw.Kind)
	if catalog == nil {
		return nil, fmt.Errorf("gateway %s: unknown kind %q", gw.ID, gw.Kind)
	}

	var table []types.MetricSample
	for _, metric := range catalog {
		samples, err := CollectMetric(ctx, f, gw, metric, start, end)
		if err != nil {
			return nil, err
		}
		table = append(table, samples...)
	}
	return table, nil
}

func zeroSample(gatewayID, metric string, ts time.Time) types.MetricSample {
	return types.MetricSample{
		GatewayID: gatewayID,
		Metric:    metric,
		Timestamp: ts,
	}
}
