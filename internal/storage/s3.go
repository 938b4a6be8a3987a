package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/invoice-insights/invoice-insights/constants"
)

// ObjectStore holds uploaded invoice documents and hands out presigned links
// for viewing them. Keys are namespaced under invoices/ so the bucket can be
// shared with other artifacts.
type ObjectStore struct {
	client   *s3.Client
	presign  *s3.PresignClient
	bucket   string
	ttl      time.Duration
	logger   *slog.Logger
}

func NewObjectStore(cfg aws.Config, bucket string, presignTTL time.Duration, logger *slog.Logger) *ObjectStore {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := s3.NewFromConfig(cfg)
	return &ObjectStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		ttl:     presignTTL,
		logger:  logger,
	}
}

func (s *ObjectStore) Bucket() string {
	return s.bucket
}

// ObjectKey derives the storage key for an invoice's document from its ID and
// original filename extension.
func ObjectKey(invoiceID uuid.UUID, filename string) string {
	return fmt.Sprintf("invoices/%s.%s", invoiceID, constants.NormalizeExt(filename))
}

// Upload stores the document body under the invoice's key and returns the key.
func (s *ObjectStore) Upload(ctx context.Context, invoiceID uuid.UUID, filename string, body io.Reader) (string, error) {
	key := ObjectKey(invoiceID, filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(constants.ContentTypeFor(filename)),
	})
	if err != nil {
		s.logger.Error("storage.upload_failed", "invoice_id", invoiceID, "key", key, "error", err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.logger.Info("storage.uploaded", "invoice_id", invoiceID, "key", key)
	return key, nil
}

// PresignGet returns a time-limited URL for downloading the object.
func (s *ObjectStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.logger.Error("storage.presign_failed", "key", key, "error", err)
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes the object. Missing objects are not an error; S3 deletes are
// idempotent and the row is the source of truth.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("storage.delete_failed", "key", key, "error", err)
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.logger.Info("storage.deleted", "key", key)
	return nil
}
