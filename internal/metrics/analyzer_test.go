package metrics

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/doitintl/idlegw/pkg/types"
)

// gatewayFailFetcher fails every fetch for one gateway and serves zeros for
// the rest.
type gatewayFailFetcher struct {
	failGatewayID string
}

func (f *gatewayFailFetcher) FetchStatistics(_ context.Context, gw types.Gateway, metric string, start, _ time.Time) ([]Datapoint, error) {
	if gw.ID == f.failGatewayID {
		return nil, fmt.Errorf("access denied")
	}
	return []Datapoint{{Timestamp: start, Sum: 100}}, nil
}

func (f *gatewayFailFetcher) HasMetric(_ context.Context, _ types.Gateway, _ string) (bool, error) {
	return true, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestAnalyzeIsolatesGatewayFailures(t *testing.T) {
	gateways := []types.Gateway{
		{ID: "nat-ok", Kind: types.KindNAT, Name: "ok"},
		{ID: "nat-bad", Kind: types.KindNAT, Name: "bad"},
		{ID: "igw-ok", Kind: types.KindIGW, Name: "also-ok"},
	}

	a := &Analyzer{
		Fetcher:   &gatewayFailFetcher{failGatewayID: "nat-bad"},
		AccountID: "123456789012",
		Region:    "us-east-1",
		Now:       fixedNow,
	}

	res, err := a.Analyze(context.Background(), gateways, 7)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(res.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(res.Summaries))
	}
	if len(res.Failures) != 1 || res.Failures[0].Gateway.ID != "nat-bad" {
		t.Fatalf("expected nat-bad in failures, got %+v", res.Failures)
	}
	for _, s := range res.Samples {
		if s.GatewayID == "nat-bad" {
			t.Error("failed gateway leaked samples into the flat table")
		}
	}
}

func TestAnalyzeEmitsSummaryPerGateway(t *testing.T) {
	gateways := []types.Gateway{
		{ID: "nat-1", Kind: types.KindNAT, Name: "a"},
		{ID: "igw-1", Kind: types.KindIGW, Name: "b"},
	}

	a := &Analyzer{Fetcher: &gatewayFailFetcher{}, AccountID: "acct", Region: "r", Now: fixedNow}
	res, err := a.Analyze(context.Background(), gateways, 30)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(res.Summaries) != len(gateways) {
		t.Fatalf("expected %d summaries, got %d", len(gateways), len(res.Summaries))
	}
	// Fan-in preserves input order.
	if res.Summaries[0].GatewayID != "nat-1" || res.Summaries[1].GatewayID != "igw-1" {
		t.Errorf("summaries out of input order: %s, %s", res.Summaries[0].GatewayID, res.Summaries[1].GatewayID)
	}
	for _, s := range res.Summaries {
		if s.AccountID != "acct" || s.Region != "r" {
			t.Errorf("summary missing scope fields: %+v", s)
		}
	}
}

func TestAnalyzeRejectsInvalidLookback(t *testing.T) {
	a := &Analyzer{Fetcher: &gatewayFailFetcher{}}
	for _, days := range []int{0, -5} {
		if _, err := a.Analyze(context.Background(), nil, days); err == nil {
			t.Errorf("expected error for %d-day lookback", days)
		}
	}
}

func TestAnalyzeReportsProgress(t *testing.T) {
	gateways := []types.Gateway{
		{ID: "nat-1", Kind: types.KindNAT},
		{ID: "nat-2", Kind: types.KindNAT},
		{ID: "nat-bad", Kind: types.KindNAT},
	}

	var (
		mu     sync.Mutex
		events []Event
	)
	a := &Analyzer{
		Fetcher: &gatewayFailFetcher{failGatewayID: "nat-bad"},
		Now:     fixedNow,
		Progress: func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		},
	}

	if _, err := a.Analyze(context.Background(), gateways, 1); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(events) != len(gateways) {
		t.Fatalf("expected %d progress events, got %d", len(gateways), len(events))
	}
	var failed int
	for _, e := range events {
		if e.Total != len(gateways) {
			t.Errorf("event total = %d, want %d", e.Total, len(gateways))
		}
		if e.Done < 1 || e.Done > len(gateways) {
			t.Errorf("event done = %d out of range", e.Done)
		}
		if e.Err != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed event, got %d", failed)
	}
}

func TestAnalyzeEmptyGatewayList(t *testing.T) {
	a := &Analyzer{Fetcher: &gatewayFailFetcher{}, Now: fixedNow}
	res, err := a.Analyze(context.Background(), nil, 30)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(res.Summaries) != 0 || len(res.Samples) != 0 || len(res.Failures) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}
