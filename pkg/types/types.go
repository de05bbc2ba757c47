package types

import "time"

// GatewayKind distinguishes the two metric families we analyze.
type GatewayKind string

const (
	KindNAT GatewayKind = "NAT"
	KindIGW GatewayKind = "IGW"
)

// Gateway represents a NAT or Internet Gateway under analysis
type Gateway struct {
	ID      string
	Kind    GatewayKind
	Name    string
	VPCID   string
	VPCName string
	State   string
	Tags    map[string]string
}

// MetricSample is one CloudWatch observation for a (gateway, metric) pair.
// Timestamps are aligned to the reporting period boundary.
type MetricSample struct {
	GatewayID string
	Metric    string
	Timestamp time.Time
	Sum       float64
	Average   float64
	Maximum   float64
	Minimum   float64
}

// GatewayStats holds the raw aggregation output for one gateway before
// derived totals are attached.
type GatewayStats struct {
	TotalPeriods   int
	IdlePeriods    int
	IdlePercentage float64

	BytesIn    float64
	BytesOut   float64
	PacketsIn  float64
	PacketsOut float64

	// NAT only
	ConnectionAttempts   float64
	ConnectionTimeouts   float64
	PortAllocationErrors float64
	MaxActiveConnections float64
	AvgActiveConnections float64

	// IGW only
	BlackholeDropBytes   float64
	NoRouteDropBytes     float64
	BlackholeDropPackets float64
	NoRouteDropPackets   float64
	Status               string // "Active" or "Inactive"
}

// AnalysisSummary is one output row per gateway. Immutable once built.
type AnalysisSummary struct {
	AccountID string `json:"account_id"`
	Region    string `json:"region"`
	VPCID     string `json:"vpc_id"`
	VPCName   string `json:"vpc_name"`

	GatewayType GatewayKind `json:"gateway_type"`
	GatewayID   string      `json:"gateway_id"`
	GatewayName string      `json:"gateway_name"`

	TotalPeriods   int     `json:"total_periods"`
	IdlePeriods    int     `json:"idle_periods"`
	IdlePercentage float64 `json:"idle_percentage"`

	TotalBytesIn    float64 `json:"total_bytes_in"`
	TotalBytesOut   float64 `json:"total_bytes_out"`
	TotalPacketsIn  float64 `json:"total_packets_in"`
	TotalPacketsOut float64 `json:"total_packets_out"`

	// NAT connection counters
	TotalConnectionAttempts float64 `json:"total_connection_attempts,omitempty"`
	TotalConnectionTimeouts float64 `json:"total_connection_timeouts,omitempty"`
	PortAllocationErrors    float64 `json:"port_allocation_errors,omitempty"`
	MaxActiveConnections    float64 `json:"max_active_connections,omitempty"`
	AvgActiveConnections    float64 `json:"avg_active_connections,omitempty"`

	// IGW drop counters
	BlackholeDropBytes   float64 `json:"total_blackhole_drops_bytes,omitempty"`
	NoRouteDropBytes     float64 `json:"total_noroute_drops_bytes,omitempty"`
	BlackholeDropPackets float64 `json:"total_blackhole_drops_packets,omitempty"`
	NoRouteDropPackets   float64 `json:"total_noroute_drops_packets,omitempty"`
	Status               string  `json:"status,omitempty"`

	TotalBytes          float64 `json:"total_bytes"`
	TotalPackets        float64 `json:"total_packets"`
	BytesPerSecondAvg   float64 `json:"bytes_per_second_avg"`
	PacketsPerSecondAvg float64 `json:"packets_per_second_avg"`
}
