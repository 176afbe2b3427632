package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Source fetches the ingredient dataset from an S3 object, so several
// deployments can share one curated dataset without rebuilding the binary.
type S3Source struct {
	Client *s3.Client
	Bucket string
	Key    string
}

// NewS3Source initializes the S3 client using environment variables or the
// shared AWS config.
func NewS3Source(ctx context.Context, bucket, key string) (*S3Source, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: bucket,
		Key:    key,
	}, nil
}

// Load downloads and parses the dataset object.
func (s *S3Source) Load(ctx context.Context) (*Catalog, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset object: %w", err)
	}
	return Parse(data)
}
