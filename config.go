/*
Package dynafluent – ambient configuration and client construction.
*/
package dynafluent

import (
	"context"
	"os"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

// DefaultRegion returns the ambient default region from AWS_REGION or
// AWS_DEFAULT_REGION. A .env file in the working directory is loaded
// once, if present, before the environment is consulted.
func DefaultRegion() string {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return os.Getenv("AWS_DEFAULT_REGION")
}

// NewClient builds a real DynamoDB client for the given region using the
// default AWS credential chain.
func NewClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	if region == "" {
		return nil, newConfigError("missing region for client construction")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, NewError("cannot load AWS configuration",
			WithCode(ErrConfiguration), WithCause(err))
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// Connect builds a client from the registry's region and attaches it.
func (r *Registry) Connect(ctx context.Context) error {
	if _, err := r.Region(""); err != nil {
		return err
	}
	client, err := NewClient(ctx, r.region)
	if err != nil {
		return err
	}
	r.client = client
	return nil
}
