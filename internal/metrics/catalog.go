package metrics

import (
	"strings"

	"github.com/doitintl/idlegw/pkg/types"
)

// CloudWatch metric names for NAT Gateways (AWS/NATGateway namespace).
const (
	MetricBytesInFromDestination   = "BytesInFromDestination"
	MetricBytesInFromSource        = "BytesInFromSource"
	MetricBytesOutToDestination    = "BytesOutToDestination"
	MetricBytesOutToSource         = "BytesOutToSource"
	MetricPacketsInFromDestination = "PacketsInFromDestination"
	MetricPacketsInFromSource      = "PacketsInFromSource"
	MetricPacketsOutToDestination  = "PacketsOutToDestination"
	MetricPacketsOutToSource       = "PacketsOutToSource"
	MetricConnectionAttemptCount   = "ConnectionAttemptCount"
	MetricConnectionEstablished    = "ConnectionEstablishedCount"
	MetricErrorPortAllocation      = "ErrorPortAllocation"
	MetricIdleTimeoutCount         = "IdleTimeoutCount"
	MetricActiveConnectionCount    = "ActiveConnectionCount"
	MetricConnectionEstabRate      = "ConnectionEstablishedRate"
)

// IGW drop counters (AWS/IGW namespace). The byte/packet in/out names are
// shared with the NAT namespace.
const (
	MetricBytesDropBlackhole   = "BytesDropCountBlackholeIPv4"
	MetricBytesDropNoRoute     = "BytesDropCountNoRouteIPv4"
	MetricPacketsDropBlackhole = "PacketsDropCountBlackholeIPv4"
	MetricPacketsDropNoRoute   = "PacketsDropCountNoRouteIPv4"
)

// natMetrics is the full NAT Gateway catalog, in fetch order.
var natMetrics = []string{
	MetricBytesInFromDestination,
	MetricBytesInFromSource,
	MetricBytesOutToDestination,
	MetricBytesOutToSource,
	MetricPacketsInFromDestination,
	MetricPacketsInFromSource,
	MetricPacketsOutToDestination,
	MetricPacketsOutToSource,
	MetricConnectionAttemptCount,
	MetricConnectionEstablished,
	MetricErrorPortAllocation,
	MetricIdleTimeoutCount,
	MetricActiveConnectionCount,
	MetricConnectionEstabRate,
}

// igwMetrics is the full Internet Gateway catalog, in fetch order.
var igwMetrics = []string{
	MetricBytesInFromDestination,
	MetricBytesOutToDestination,
	MetricPacketsInFromDestination,
	MetricPacketsOutToDestination,
	MetricBytesDropBlackhole,
	MetricBytesDropNoRoute,
	MetricPacketsDropBlackhole,
	MetricPacketsDropNoRoute,
}

// CatalogFor returns the ordered metric catalog for a gateway kind. Unknown
// kinds return nil; callers treat that as a usage error.
func CatalogFor(kind types.GatewayKind) []string {
	switch kind {
	case types.KindNAT:
		return natMetrics
	case types.KindIGW:
		return igwMetrics
	default:
		return nil
	}
}

// IsTrafficMetric reports whether a metric counts bytes or packets moved
// through the gateway. Idle-period detection only looks at these.
func IsTrafficMetric(name string) bool {
	return strings.Contains(name, "Bytes") || strings.Contains(name, "Packets")
}

// sumGroup maps one summary field to the source metrics whose Sum values
// feed it. Keeping the mapping as data means a third gateway kind only
// needs a new table, not new aggregation code.
type sumGroup struct {
	field   string
	metrics []string
}

// Summary field names used as sumGroup keys.
const (
	fieldBytesIn    = "bytesIn"
	fieldBytesOut   = "bytesOut"
	fieldPacketsIn  = "packetsIn"
	fieldPacketsOut = "packetsOut"

	fieldConnAttempts  = "connectionAttempts"
	fieldConnTimeouts  = "connectionTimeouts"
	fieldPortAllocErr  = "portAllocationErrors"
	fieldDropBytesBH   = "blackholeDropBytes"
	fieldDropBytesNR   = "noRouteDropBytes"
	fieldDropPacketsBH = "blackholeDropPackets"
	fieldDropPacketsNR = "noRouteDropPackets"
)

// natSumGroups: NAT byte/packet totals merge the source and destination
// directions.
var natSumGroups = []sumGroup{
	{fieldBytesIn, []string{MetricBytesInFromSource, MetricBytesInFromDestination}},
	{fieldBytesOut, []string{MetricBytesOutToSource, MetricBytesOutToDestination}},
	{fieldPacketsIn, []string{MetricPacketsInFromSource, MetricPacketsInFromDestination}},
	{fieldPacketsOut, []string{MetricPacketsOutToSource, MetricPacketsOutToDestination}},
	{fieldConnAttempts, []string{MetricConnectionAttemptCount}},
	{fieldConnTimeouts, []string{MetricIdleTimeoutCount}},
	{fieldPortAllocErr, []string{MetricErrorPortAllocation}},
}

// igwSumGroups: IGW has no "source" direction, so each total maps to a
// single metric.
var igwSumGroups = []sumGroup{
	{fieldBytesIn, []string{MetricBytesInFromDestination}},
	{fieldBytesOut, []string{MetricBytesOutToDestination}},
	{fieldPacketsIn, []string{MetricPacketsInFromDestination}},
	{fieldPacketsOut, []string{MetricPacketsOutToDestination}},
	{fieldDropBytesBH, []string{MetricBytesDropBlackhole}},
	{fieldDropBytesNR, []string{MetricBytesDropNoRoute}},
	{fieldDropPacketsBH, []string{MetricPacketsDropBlackhole}},
	{fieldDropPacketsNR, []string{MetricPacketsDropNoRoute}},
}

func sumGroupsFor(kind types.GatewayKind) []sumGroup {
	if kind == types.KindNAT {
		return natSumGroups
	}
	return igwSumGroups
}
