package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"structure-manager/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// SubmittedPrefix is where reconciled snapshots are archived.
const SubmittedPrefix = "submitted/"

// ExportPrefix is where structure exports are archived.
const ExportPrefix = "exports/"

// Entry describes one archived snapshot object.
type Entry struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Service archives snapshots to object storage. Every snapshot that
// enters reconciliation is stored first, so destructive plans can
// always be traced back to the exact submitted document.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger

	// now is swappable so tests get stable object names.
	now func() time.Time
}

// NewService creates a new snapshot service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Archive stores a submitted snapshot and returns its object key.
func (s *Service) Archive(ctx context.Context, data []byte) (string, error) {
	return s.put(ctx, SubmittedPrefix, data)
}

// ArchiveExport stores a structure export and returns its object key.
func (s *Service) ArchiveExport(ctx context.Context, data []byte) (string, error) {
	return s.put(ctx, ExportPrefix, data)
}

func (s *Service) put(ctx context.Context, prefix string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	// Timestamp first so listings sort chronologically; the id suffix
	// keeps same-second submissions distinct.
	name := fmt.Sprintf("%s%s-%s.json",
		prefix,
		s.now().UTC().Format("2006-01-02T15-04-05Z"),
		uuid.NewString()[:8],
	)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		name,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to archive snapshot: %w", err)
	}

	s.logger.Info("Archived snapshot",
		zap.String("object", name),
		zap.Int("bytes", len(data)),
	)
	return name, nil
}

// List returns the archived snapshots under the submitted prefix.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    SubmittedPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		entries = append(entries, Entry{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return entries, nil
}

// Get streams one archived snapshot.
func (s *Service) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return reader, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}
