// internal/store/s3.go
// S3 backend for the dataset store. It reads documents straight from
// the bucket the offline builder publishes to, which lets the service
// run without a CDN in front.
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Fetcher retrieves documents from an S3-compatible bucket.
type s3Fetcher struct {
	client *s3.Client // AWS S3 client
	bucket string     // S3 bucket holding the dataset
}

// NewS3 creates a store backed by an S3-compatible bucket.
// It supports both AWS S3 and S3-compatible services like MinIO.
// Parameters:
//   - endpoint: S3 service endpoint URL (empty for AWS default)
//   - region: AWS region (or equivalent for S3-compatible services)
//   - bucket: S3 bucket name holding the dataset
//   - accessKey: Access key for authentication
//   - secretKey: Secret key for authentication
// Returns:
//   - *Client: Initialized store client
//   - error: Any error that occurred during initialization
func NewS3(endpoint, region, bucket, accessKey, secretKey string) (*Client, error) {
	// Load AWS configuration with custom endpoint and credentials
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		// Configure static credentials
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create S3 client with path-style addressing for compatibility
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true // Required for MinIO and other S3-compatible services
	})

	return newClient(&s3Fetcher{
		client: client,
		bucket: bucket,
	}), nil
}

func (f *s3Fetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	// Object keys in the bucket have no leading slash
	key := strings.TrimPrefix(path, "/")

	result, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		// Missing keys and transport failures both degrade to absent
		return nil, fmt.Errorf("%w: fetching s3://%s/%s: %v", ErrUnavailable, f.bucket, key, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading s3://%s/%s: %v", ErrUnavailable, f.bucket, key, err)
	}
	return body, nil
}
