package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/doitintl/idlegw/internal/metrics"
	pkgtypes "github.com/doitintl/idlegw/pkg/types"
)

// CloudWatch namespaces and dimensions per gateway kind.
const (
	natNamespace = "AWS/NATGateway"
	igwNamespace = "AWS/IGW"
	natDimension = "NatGatewayId"
	igwDimension = "InternetGatewayId"
)

// CloudWatchClient wraps the AWS CloudWatch metrics API and implements
// metrics.Fetcher.
type CloudWatchClient struct {
	client *cloudwatch.Client
}

// NewCloudWatchClient creates a new CloudWatch client wrapper
func NewCloudWatchClient(client *cloudwatch.Client) *CloudWatchClient {
	return &CloudWatchClient{client: client}
}

func namespaceFor(kind pkgtypes.GatewayKind) (namespace, dimension string, err error) {
	switch kind {
	case pkgtypes.KindNAT:
		return natNamespace, natDimension, nil
	case pkgtypes.KindIGW:
		return igwNamespace, igwDimension, nil
	default:
		return "", "", fmt.Errorf("unknown gateway kind %q", kind)
	}
}

// FetchStatistics retrieves Sum/Average/Maximum/Minimum statistics for one
// metric over one window at the fixed 6-hour period. CloudWatch returns
// datapoints in arbitrary order; they are sorted by timestamp here because
// the collector concatenates windows chronologically.
func (c *CloudWatchClient) FetchStatistics(ctx context.Context, gw pkgtypes.Gateway, metric string, start, end time.Time) ([]metrics.Datapoint, error) {
	namespace, dimension, err := namespaceFor(gw.Kind)
	if err != nil {
		return nil, err
	}

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  &namespace,
		MetricName: &metric,
		Dimensions: []cwtypes.Dimension{
			{Name: &dimension, Value: &gw.ID},
		},
		StartTime: &start,
		EndTime:   &end,
		Period:    int32Ptr(metrics.PeriodSeconds),
		Statistics: []cwtypes.Statistic{
			cwtypes.StatisticSum,
			cwtypes.StatisticAverage,
			cwtypes.StatisticMaximum,
			cwtypes.StatisticMinimum,
		},
	}

	result, err := c.client.GetMetricStatistics(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get metric statistics: %w", err)
	}

	points := make([]metrics.Datapoint, 0, len(result.Datapoints))
	for _, dp := range result.Datapoints {
		points = append(points, metrics.Datapoint{
			Timestamp: timeValue(dp.Timestamp),
			Sum:       float64Value(dp.Sum),
			Average:   float64Value(dp.Average),
			Maximum:   float64Value(dp.Maximum),
			Minimum:   float64Value(dp.Minimum),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return points, nil
}

// HasMetric reports whether CloudWatch knows the metric for this gateway at
// all. Used to decide the IGW zero-fill path before issuing chunked
// fetches.
func (c *CloudWatchClient) HasMetric(ctx context.Context, gw pkgtypes.Gateway, metric string) (bool, error) {
	namespace, dimension, err := namespaceFor(gw.Kind)
	if err != nil {
		return false, err
	}

	result, err := c.client.ListMetrics(ctx, &cloudwatch.ListMetricsInput{
		Namespace:  &namespace,
		MetricName: &metric,
		Dimensions: []cwtypes.DimensionFilter{
			{Name: &dimension, Value: &gw.ID},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to list metrics: %w", err)
	}

	return len(result.Metrics) > 0, nil
}

func int32Ptr(i int32) *int32 {
	return &i
}

func float64Value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
