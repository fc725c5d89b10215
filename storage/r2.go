package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint looks like https://<account-id>.r2.cloudflarestorage.com
	Endpoint     string
	PublicDomain string
}

// putObjectAPI is the slice of the S3 client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Uploader writes objects to a Cloudflare R2 bucket through the S3 API.
type R2Uploader struct {
	s3     putObjectAPI
	bucket string
	domain string
}

func NewR2Uploader(ctx context.Context, cfg R2Config) (*R2Uploader, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return newR2Uploader(client, cfg.Bucket, cfg.PublicDomain), nil
}

func newR2Uploader(api putObjectAPI, bucket, domain string) *R2Uploader {
	return &R2Uploader{s3: api, bucket: bucket, domain: strings.TrimRight(domain, "/")}
}

func (u *R2Uploader) Upload(ctx context.Context, obj *Object) (string, error) {
	key := "uploads/" + obj.Name
	_, err := u.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          obj.Body,
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(obj.Size),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", obj.Name, err)
	}
	return u.publicURL(key), nil
}

func (u *R2Uploader) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", u.domain, u.bucket, key)
}

func (u *R2Uploader) Close() error { return nil }
