package report

import (
	"strings"
	"testing"
	"time"

	"github.com/doitintl/idlegw/pkg/types"
)

func testSummaries() []types.AnalysisSummary {
	return []types.AnalysisSummary{
		{
			AccountID: "123456789012", Region: "us-east-1",
			VPCID: "vpc-1", VPCName: "prod",
			GatewayType: types.KindNAT, GatewayID: "nat-1", GatewayName: "nat-prod",
			TotalPeriods: 360, IdlePeriods: 240, IdlePercentage: 66.67,
			TotalBytesIn: 1000, TotalBytesOut: 2000,
			TotalBytes: 3000, BytesPerSecondAvg: 0.39,
			TotalConnectionAttempts: 50, MaxActiveConnections: 12,
		},
		{
			AccountID: "123456789012", Region: "us-east-1",
			VPCID: "vpc-2", VPCName: "dev",
			GatewayType: types.KindIGW, GatewayID: "igw-1", GatewayName: "igw-dev",
			TotalPeriods: 1, IdlePeriods: 1, IdlePercentage: 100,
			Status: "Inactive",
		},
	}
}

func testSamples() []types.MetricSample {
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []types.MetricSample{
		{GatewayID: "nat-1", Metric: "BytesInFromSource", Timestamp: ts, Sum: 1000},
		{GatewayID: "igw-1", Metric: "BytesInFromDestination", Timestamp: ts},
	}
}

func TestMarkdownContainsGatewayDetail(t *testing.T) {
	r := New("us-east-1", "123456789012", 90, testSummaries(), testSamples())
	md := r.ToMarkdown()

	for _, want := range []string{
		"**Lookback:** 90 days",
		"NAT Gateway: nat-prod (nat-1)",
		"Idle: 66.67% (240 of 360 periods)",
		"Connections: 50 attempts",
		"IGW Gateway: igw-dev (igw-1)",
		"Status: Inactive",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestMarkdownOmitsKindMismatchedSections(t *testing.T) {
	md := New("us-east-1", "1", 30, testSummaries(), nil).ToMarkdown()

	// One status line (IGW), one connections line (NAT).
	if strings.Count(md, "Status:") != 1 {
		t.Errorf("expected exactly one Status line, markdown:\n%s", md)
	}
	if strings.Count(md, "Connections:") != 1 {
		t.Errorf("expected exactly one Connections line, markdown:\n%s", md)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 45, 9, 0, time.UTC)
	got := DefaultOutputPath("123456789012", "eu-west-1", now)
	want := "gateway_analysis_123456789012_eu-west-1_20250601_134509.xlsx"
	if got != want {
		t.Errorf("DefaultOutputPath = %q, want %q", got, want)
	}
}

func TestSaveJSON(t *testing.T) {
	r := New("us-east-1", "123456789012", 90, testSummaries(), testSamples())
	path := t.TempDir() + "/report.json"

	if err := r.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON returned error: %v", err)
	}
}
