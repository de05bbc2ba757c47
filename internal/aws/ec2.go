package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	pkgtypes "github.com/doitintl/idlegw/pkg/types"
)

// EC2Client wraps AWS EC2 API calls
type EC2Client struct {
	client *ec2.Client

	// VPC Name-tag lookups repeat across gateways in the same VPC.
	vpcNames map[string]string
}

// NewEC2Client creates a new EC2 client wrapper
func NewEC2Client(client *ec2.Client) *EC2Client {
	return &EC2Client{client: client, vpcNames: make(map[string]string)}
}

// DiscoverNATGateways finds all NAT Gateways in the region
func (c *EC2Client) DiscoverNATGateways(ctx context.Context) ([]pkgtypes.Gateway, error) {
	var gateways []pkgtypes.Gateway

	paginator := ec2.NewDescribeNatGatewaysPaginator(c.client, &ec2.DescribeNatGatewaysInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe NAT gateways: %w", err)
		}

		for _, nat := range page.NatGateways {
			// Skip deleted/failed NAT gateways
			if nat.State == types.NatGatewayStateDeleted || nat.State == types.NatGatewayStateFailed {
				continue
			}

			gw := pkgtypes.Gateway{
				ID:    *nat.NatGatewayId,
				Kind:  pkgtypes.KindNAT,
				State: string(nat.State),
				Tags:  tagMap(nat.Tags),
			}
			if nat.VpcId != nil {
				gw.VPCID = *nat.VpcId
			}
			c.resolveNames(ctx, &gw)
			gateways = append(gateways, gw)
		}
	}

	return gateways, nil
}

// DiscoverInternetGateways finds all Internet Gateways in the region
func (c *EC2Client) DiscoverInternetGateways(ctx context.Context) ([]pkgtypes.Gateway, error) {
	var gateways []pkgtypes.Gateway

	paginator := ec2.NewDescribeInternetGatewaysPaginator(c.client, &ec2.DescribeInternetGatewaysInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe internet gateways: %w", err)
		}

		for _, igw := range page.InternetGateways {
			gw := pkgtypes.Gateway{
				ID:   *igw.InternetGatewayId,
				Kind: pkgtypes.KindIGW,
				Tags: tagMap(igw.Tags),
			}
			// IGWs carry the VPC on their attachment instead of a VpcId
			// field.
			for _, att := range igw.Attachments {
				if att.VpcId != nil {
					gw.VPCID = *att.VpcId
					gw.State = string(att.State)
					break
				}
			}
			c.resolveNames(ctx, &gw)
			gateways = append(gateways, gw)
		}
	}

	return gateways, nil
}

// DiscoverGateways returns NAT Gateways followed by Internet Gateways.
func (c *EC2Client) DiscoverGateways(ctx context.Context) ([]pkgtypes.Gateway, error) {
	nats, err := c.DiscoverNATGateways(ctx)
	if err != nil {
		return nil, err
	}
	igws, err := c.DiscoverInternetGateways(ctx)
	if err != nil {
		return nil, err
	}
	return append(nats, igws...), nil
}

// resolveNames fills VPCName and the gateway display name. Naming follows
// the reporting convention: the Name tag wins, then NAT-<vpc>/IGW-<vpc>,
// then the raw gateway id. A failed VPC lookup degrades to the VPC id
// rather than failing discovery.
func (c *EC2Client) resolveNames(ctx context.Context, gw *pkgtypes.Gateway) {
	if gw.VPCID != "" {
		gw.VPCName = c.vpcName(ctx, gw.VPCID)
	}

	if name, ok := gw.Tags["Name"]; ok && name != "" {
		gw.Name = name
		return
	}
	if gw.VPCName != "" {
		gw.Name = fmt.Sprintf("%s-%s", gw.Kind, gw.VPCName)
		return
	}
	gw.Name = gw.ID
}

func (c *EC2Client) vpcName(ctx context.Context, vpcID string) string {
	if name, ok := c.vpcNames[vpcID]; ok {
		return name
	}

	name := vpcID
	resp, err := c.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{vpcID}})
	if err == nil && len(resp.Vpcs) > 0 {
		for _, tag := range resp.Vpcs[0].Tags {
			if tag.Key != nil && *tag.Key == "Name" && tag.Value != nil {
				name = *tag.Value
				break
			}
		}
	}

	c.vpcNames[vpcID] = name
	return name
}

func tagMap(tags []types.Tag) map[string]string {
	m := make(map[string]string)
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			m[*tag.Key] = *tag.Value
		}
	}
	return m
}
