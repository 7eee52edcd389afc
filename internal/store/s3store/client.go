// Package s3store implements the immutable object store on S3.
package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// cacheControl disables caching so readers never observe stale manifest
// bytes through any intermediary.
const cacheControl = "max-age=0,no-cache,no-store"

// Client writes JSON blobs to a single S3 bucket.
type Client struct {
	s3     *s3.Client
	bucket string
	dryRun bool
	logger *slog.Logger
}

// New constructs a client for the given bucket. In dry-run mode PutImmutable
// logs the target key and payload size instead of calling S3.
func New(cfg aws.Config, bucket string, dryRun bool, logger *slog.Logger) *Client {
	return &Client{
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
		dryRun: dryRun,
		logger: logger,
	}
}

// PutImmutable serializes v as JSON and writes it under key. Keys are
// content-addressed upstream, so repeated writes to the same key carry the
// same bytes and the unconditional put is idempotent.
func (c *Client) PutImmutable(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize object %s: %w", key, err)
	}

	if c.dryRun {
		c.logger.Info("dry-run: would store object",
			slog.String("uri", c.URI(key)),
			slog.Int("bytes", len(body)))
		return nil
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(c.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", c.URI(key), err)
	}

	c.logger.Info("stored object",
		slog.String("uri", c.URI(key)),
		slog.Int("bytes", len(body)))
	return nil
}

// URI returns the s3:// location for a key.
func (c *Client) URI(key string) string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, key)
}
