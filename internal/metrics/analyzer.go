package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doitintl/idlegw/pkg/types"
)

// DefaultLookbackDays is the analysis window when the caller does not pick
// one.
const DefaultLookbackDays = 90

const defaultConcurrency = 4

// Event reports per-gateway progress to an optional callback.
type Event struct {
	Gateway types.Gateway
	Done    int
	Total   int
	Err     error
}

// Failure records a gateway whose collection failed. Other gateways are
// unaffected.
type Failure struct {
	Gateway types.Gateway
	Err     error
}

// Result is one completed analysis run: the flat sample table (consumed by
// the report writer for per-gateway detail views) plus one summary per
// successfully analyzed gateway.
type Result struct {
	Samples   []types.MetricSample
	Summaries []types.AnalysisSummary
	Failures  []Failure
}

// Analyzer runs the collection and aggregation pipeline over a set of
// gateways.
type Analyzer struct {
	Fetcher   Fetcher
	AccountID string
	Region    string

	// Concurrency bounds the per-gateway fan-out; <= 0 uses a default.
	Concurrency int

	// Progress, when set, is invoked after each gateway finishes. It may
	// be called from multiple goroutines.
	Progress func(Event)

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Analyze collects and aggregates days worth of metrics for every gateway.
// Each gateway is processed independently: its sample table is private
// until the fan-in, and a failure is recorded in Result.Failures rather
// than aborting the run.
func (a *Analyzer) Analyze(ctx context.Context, gateways []types.Gateway, days int) (*Result, error) {
	if days <= 0 {
		return nil, fmt.Errorf("invalid lookback of %d days: must be positive", days)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	end := now().UTC()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	type outcome struct {
		samples []types.MetricSample
		summary types.AnalysisSummary
		err     error
	}
	outcomes := make([]outcome, len(gateways))

	limit := a.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, gw := range gateways {
		g.Go(func() error {
			samples, err := CollectGateway(gctx, a.Fetcher, gw, start, end)
			if err == nil {
				stats := Aggregate(gw.Kind, samples)
				outcomes[i].summary, err = BuildSummary(a.AccountID, a.Region, gw, stats)
			}
			outcomes[i].samples = samples
			outcomes[i].err = err

			if a.Progress != nil {
				mu.Lock()
				done++
				ev := Event{Gateway: gw, Done: done, Total: len(gateways), Err: err}
				mu.Unlock()
				a.Progress(ev)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fan-in preserves the input gateway order, so the flat table stays
	// deterministic regardless of which goroutine finished first.
	res := &Result{}
	for i, gw := range gateways {
		if outcomes[i].err != nil {
			res.Failures = append(res.Failures, Failure{Gateway: gw, Err: outcomes[i].err})
			continue
		}
		res.Samples = append(res.Samples, outcomes[i].samples...)
		res.Summaries = append(res.Summaries, outcomes[i].summary)
	}

	return res, nil
}
