package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/fileshare/internal/netx"
)

// loadDefaultAWSConfig is a seam for tests.
var loadDefaultAWSConfig = config.LoadDefaultConfig

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PresignTTL is the lifetime of links from DownloadURL.
	PresignTTL time.Duration
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout time.Duration
}

// S3ObjectClient writes objects with PutObject and can presign GETs for
// them. Path-style addressing is used so MinIO and other local S3
// implementations work without DNS tricks.
type S3ObjectClient struct {
	api     *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewS3ObjectClient(ctx context.Context, o S3Options) (*S3ObjectClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(o.Region),
		config.WithRetryMaxAttempts(1),
	}
	if o.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	if o.Timeout > 0 {
		// The loader adds AWS_CA_BUNDLE roots through WithTransportOptions,
		// which only a BuildableClient has.
		opts = append(opts, config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(o.Timeout)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = true
	})

	ttl := o.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3ObjectClient{
		api:     api,
		presign: s3.NewPresignClient(api),
		bucket:  o.Bucket,
		ttl:     ttl,
	}, nil
}

func (c *S3ObjectClient) PutObject(ctx context.Context, in PutObjectInput) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(in.Key),
		Body:          in.Body,
		ContentType:   aws.String(in.ContentType),
		ContentLength: aws.Int64(in.Size),
	})
	if err != nil {
		return mapS3Error(err)
	}
	return nil
}

// DownloadURL presigns a GET for key.
func (c *S3ObjectClient) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.ttl))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

func mapS3Error(err error) error {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		code := re.HTTPStatusCode()
		return &netx.StatusError{
			Code:   code,
			Status: fmt.Sprintf("%d %s", code, http.StatusText(code)),
			Body:   re.Error(),
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
