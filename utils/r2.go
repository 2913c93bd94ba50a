// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
)

type R2Options struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// CDNBaseURL prefixes returned object URLs; defaults to the bucket endpoint
	CDNBaseURL string
}

// R2Store writes objects to a Cloudflare R2 bucket through the S3 API
type R2Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Store(ctx context.Context, opts R2Options) (*R2Store, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, eris.Wrap(err, "failed to load R2 config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	baseURL := opts.CDNBaseURL
	if baseURL == "" {
		baseURL = endpoint + "/" + opts.Bucket
	}
	return &R2Store{client: client, bucket: opts.Bucket, baseURL: baseURL}, nil
}

// Put uploads body under key and returns its public URL
func (r *R2Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", eris.Wrapf(err, "failed to upload %s to R2", key)
	}
	return PublicURL(r.baseURL, key), nil
}

// PublicURL joins a base URL and an object key
func PublicURL(baseURL, key string) string {
	return fmt.Sprintf("%s/%s", baseURL, key)
}
