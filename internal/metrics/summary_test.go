package metrics

import (
	"testing"

	"github.com/doitintl/idlegw/pkg/types"
)

func TestBuildSummaryDerivedFields(t *testing.T) {
	gw := types.Gateway{ID: "nat-1", Kind: types.KindNAT, Name: "nat-main", VPCID: "vpc-1", VPCName: "prod"}
	stats := types.GatewayStats{
		TotalPeriods:   4, // 24 hours of 6-hour periods
		IdlePeriods:    1,
		IdlePercentage: 25,
		BytesIn:        600000,
		BytesOut:       264000,
		PacketsIn:      500,
		PacketsOut:     364,
	}

	s, err := BuildSummary("123456789012", "us-east-1", gw, stats)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	if s.TotalBytes != 864000 {
		t.Errorf("TotalBytes = %v, want 864000", s.TotalBytes)
	}
	if s.TotalPackets != 864 {
		t.Errorf("TotalPackets = %v, want 864", s.TotalPackets)
	}
	// 864000 bytes over 4*21600s = 10 B/s; 864 packets over 86400s = 0.01 pkt/s.
	if s.BytesPerSecondAvg != 10 {
		t.Errorf("BytesPerSecondAvg = %v, want 10", s.BytesPerSecondAvg)
	}
	if s.PacketsPerSecondAvg != 0.01 {
		t.Errorf("PacketsPerSecondAvg = %v, want 0.01", s.PacketsPerSecondAvg)
	}
	if s.AccountID != "123456789012" || s.Region != "us-east-1" || s.VPCName != "prod" {
		t.Errorf("identity fields not carried over: %+v", s)
	}
}

func TestBuildSummaryZeroPeriods(t *testing.T) {
	gw := types.Gateway{ID: "igw-1", Kind: types.KindIGW}

	s, err := BuildSummary("acct", "eu-west-1", gw, types.GatewayStats{})
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	if s.IdlePercentage != 0 {
		t.Errorf("IdlePercentage = %v, want 0 with no periods", s.IdlePercentage)
	}
	if s.BytesPerSecondAvg != 0 || s.PacketsPerSecondAvg != 0 {
		t.Errorf("rates = %v/%v, want 0/0 with no periods", s.BytesPerSecondAvg, s.PacketsPerSecondAvg)
	}
}

func TestBuildSummaryKindSpecificFields(t *testing.T) {
	natStats := types.GatewayStats{
		TotalPeriods:         1,
		ConnectionAttempts:   10,
		ConnectionTimeouts:   2,
		PortAllocationErrors: 1,
		MaxActiveConnections: 55,
		AvgActiveConnections: 12.5,
	}
	nat, err := BuildSummary("a", "r", types.Gateway{ID: "nat-1", Kind: types.KindNAT}, natStats)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if nat.TotalConnectionAttempts != 10 || nat.MaxActiveConnections != 55 {
		t.Errorf("NAT counters not carried: %+v", nat)
	}
	if nat.Status != "" {
		t.Errorf("NAT summary should have no status, got %q", nat.Status)
	}

	igwStats := types.GatewayStats{
		TotalPeriods:       1,
		BlackholeDropBytes: 7,
		NoRouteDropBytes:   8,
		Status:             "Inactive",
	}
	igw, err := BuildSummary("a", "r", types.Gateway{ID: "igw-1", Kind: types.KindIGW}, igwStats)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if igw.Status != "Inactive" || igw.BlackholeDropBytes != 7 {
		t.Errorf("IGW fields not carried: %+v", igw)
	}
	if igw.TotalConnectionAttempts != 0 {
		t.Errorf("IGW summary carries NAT counters: %+v", igw)
	}
}

func TestBuildSummaryRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		gw    types.Gateway
		stats types.GatewayStats
	}{
		{"unknown kind", types.Gateway{ID: "x", Kind: "VGW"}, types.GatewayStats{}},
		{"negative total", types.Gateway{ID: "x", Kind: types.KindNAT}, types.GatewayStats{TotalPeriods: -1}},
		{"negative idle", types.Gateway{ID: "x", Kind: types.KindNAT}, types.GatewayStats{IdlePeriods: -2}},
		{"idle exceeds total", types.Gateway{ID: "x", Kind: types.KindNAT}, types.GatewayStats{TotalPeriods: 1, IdlePeriods: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSummary("a", "r", tt.gw, tt.stats); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
