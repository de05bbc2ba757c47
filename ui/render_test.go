package ui

import (
	"strings"
	"testing"

	"github.com/doitintl/idlegw/internal/metrics"
	"github.com/doitintl/idlegw/internal/report"
	"github.com/doitintl/idlegw/pkg/types"
)

func TestRenderSummaryContent(t *testing.T) {
	summaries := []types.AnalysisSummary{
		{
			GatewayType: types.KindNAT, GatewayID: "nat-1", GatewayName: "nat-prod",
			VPCID: "vpc-1", VPCName: "prod",
			TotalPeriods: 360, IdlePeriods: 240, IdlePercentage: 66.67,
			TotalBytesIn: 1234567, TotalBytesOut: 1000,
			TotalConnectionAttempts: 42,
		},
		{
			GatewayType: types.KindIGW, GatewayID: "igw-1", GatewayName: "igw-dev",
			Status: "Inactive", IdlePercentage: 100,
		},
	}
	r := report.New("us-east-1", "123456789012", 90, summaries, nil)

	out := RenderSummary(r, nil)

	for _, want := range []string{
		"Gateway Analysis Summary",
		"Account: 123456789012",
		"NAT Gateway: nat-prod (nat-1)",
		"Idle: 66.67% (240 of 360 periods)",
		"1,234,567 bytes in",
		"42 attempts",
		"IGW Gateway: igw-dev (igw-1)",
		"Inactive",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q", want)
		}
	}
}

func TestRenderSummaryListsFailures(t *testing.T) {
	r := report.New("us-east-1", "1", 30, nil, nil)
	failures := []metrics.Failure{
		{Gateway: types.Gateway{ID: "nat-9"}, Err: errFake("throttled")},
	}

	out := RenderSummary(r, failures)
	if !strings.Contains(out, "nat-9") || !strings.Contains(out, "throttled") {
		t.Errorf("failure section missing gateway context:\n%s", out)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
