package core

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/doitintl/idlegw/internal/aws"
	"github.com/doitintl/idlegw/internal/metrics"
	"github.com/doitintl/idlegw/pkg/types"
)

// Scanner orchestrates gateway discovery and the idle analysis
type Scanner struct {
	region    string
	accountID string
	ec2Client *aws.EC2Client
	cwClient  *aws.CloudWatchClient
}

// NewScanner creates a new scanner instance
func NewScanner(ctx context.Context, region, profile string) (*Scanner, error) {
	// Build config options with fast IMDS timeout
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithEC2IMDSClientEnableState(imds.ClientDisabled), // Disable IMDS for fast failure on non-EC2
	}

	// Add profile if specified
	if profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Validate credentials by calling STS - this fails fast if not authenticated
	stsClient := sts.NewFromConfig(cfg)
	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	accountID := ""
	if identity.Account != nil {
		accountID = *identity.Account
	}

	return &Scanner{
		region:    region,
		accountID: accountID,
		ec2Client: aws.NewEC2Client(ec2.NewFromConfig(cfg)),
		cwClient:  aws.NewCloudWatchClient(cloudwatch.NewFromConfig(cfg)),
	}, nil
}

// GetAccountID returns the AWS account ID
func (s *Scanner) GetAccountID() string {
	return s.accountID
}

// GetRegion returns the AWS region
func (s *Scanner) GetRegion() string {
	return s.region
}

// DiscoverGateways finds all NAT and Internet Gateways in the region
func (s *Scanner) DiscoverGateways(ctx context.Context) ([]types.Gateway, error) {
	return s.ec2Client.DiscoverGateways(ctx)
}

// Analyze runs the idle analysis over the given gateways. progress may be
// nil.
func (s *Scanner) Analyze(ctx context.Context, gateways []types.Gateway, days int, progress func(metrics.Event)) (*metrics.Result, error) {
	analyzer := &metrics.Analyzer{
		Fetcher:   s.cwClient,
		AccountID: s.accountID,
		Region:    s.region,
		Progress:  progress,
	}
	return analyzer.Analyze(ctx, gateways, days)
}
