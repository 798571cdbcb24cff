package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mindfunnel/mindfunnel-api/config"
)

// StorageClient is the object-storage surface the worker needs: put a rendered
// document somewhere durable and hand back a public link.
type StorageClient interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	GetPublicURL(key string) string
}

// S3Client implements StorageClient against any S3-compatible endpoint
// (Cloudflare R2, MinIO, Supabase storage).
type S3Client struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

func NewS3Client(cfg *config.Config) (StorageClient, error) {
	sc := cfg.Storage
	if sc.Endpoint == "" || sc.AccessKeyID == "" || sc.SecretAccessKey == "" || sc.Bucket == "" {
		return nil, fmt.Errorf("storage configuration incomplete")
	}

	endpointResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: sc.Endpoint}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(endpointResolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			sc.AccessKeyID,
			sc.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(sc.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	return &S3Client{
		s3Client:  s3.NewFromConfig(awsCfg),
		bucket:    sc.Bucket,
		publicURL: strings.TrimSuffix(sc.PublicURL, "/"),
	}, nil
}

// Upload writes the object and returns its public URL.
func (c *S3Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return c.GetPublicURL(key), nil
}

func (c *S3Client) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s", c.publicURL, strings.TrimPrefix(key, "/"))
}
