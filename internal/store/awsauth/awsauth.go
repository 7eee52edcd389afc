// Package awsauth centralizes AWS session construction so the S3 and
// DynamoDB clients share one region/profile resolution path.
package awsauth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Load resolves an AWS configuration for the given region and shared
// credentials profile. An empty profile falls back to the SDK default chain.
func Load(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config (region %s, profile %s): %w", region, profile, err)
	}
	return cfg, nil
}
