// Package media issues presigned upload and download URLs for the
// object store and tracks the lifecycle of uploaded objects.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	appconfig "github.com/harakki/comics-server/internal/config"
	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 2 * time.Hour
)

// ObjectStore is the subset of S3 operations the service needs.
// s3.PresignClient and s3.Client satisfy the two halves; tests swap in
// fakes.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	DeleteObjects(ctx context.Context, keys []string) error
}

type Service struct {
	store  *store.Store
	bucket ObjectStore
}

func NewService(s *store.Store, bucket ObjectStore) *Service {
	return &Service{store: s, bucket: bucket}
}

// RequestUpload reserves a media slot and returns a short-lived
// presigned PUT URL for it. The slot stays PENDING until the client
// confirms the upload; the cleanup job reaps slots that never do.
func (svc *Service) RequestUpload(ctx context.Context, fileName, contentType string) (*models.UploadTicket, error) {
	fileName = sanitizeFileName(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("file name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("content type %q is not an image: %w", contentType, errs.ErrInvalidRequest)
	}

	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s/%s", id, fileName)
	m := &models.Media{
		ID:               id,
		ObjectKey:        key,
		OriginalFilename: fileName,
		ContentType:      contentType,
		Status:           models.MediaPending,
		CreatedAt:        time.Now(),
	}
	if err := svc.store.CreateMedia(m); err != nil {
		return nil, err
	}
	url, err := svc.bucket.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	return &models.UploadTicket{MediaID: id, UploadURL: url, ObjectKey: key}, nil
}

// ConfirmUpload fixes a pending slot so it survives cleanup.
func (svc *Service) ConfirmUpload(id string) (*models.Media, error) {
	if err := svc.store.FixateMedia(id); err != nil {
		return nil, err
	}
	return svc.store.GetMediaByID(id)
}

// DownloadURL returns a presigned GET URL for a stored object.
func (svc *Service) DownloadURL(ctx context.Context, id string) (string, error) {
	m, err := svc.store.GetMediaByID(id)
	if err != nil {
		return "", err
	}
	return svc.bucket.PresignGet(ctx, m.ObjectKey)
}

// Delete removes both the object and its record.
func (svc *Service) Delete(ctx context.Context, id string) error {
	m, err := svc.store.GetMediaByID(id)
	if err != nil {
		return err
	}
	if err := svc.bucket.DeleteObjects(ctx, []string{m.ObjectKey}); err != nil {
		return err
	}
	return svc.store.DeleteMedia(id)
}

// CleanupStale deletes pending uploads older than maxAge from both the
// bucket and the database. It returns how many were removed.
func (svc *Service) CleanupStale(ctx context.Context, maxAge time.Duration) (int, error) {
	stale, err := svc.store.ListStaleMedia(time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}
	keys := make([]string, len(stale))
	ids := make([]string, len(stale))
	for i, m := range stale {
		keys[i] = m.ObjectKey
		ids[i] = m.ID
	}
	if err := svc.bucket.DeleteObjects(ctx, keys); err != nil {
		return 0, err
	}
	if err := svc.store.DeleteMediaBatch(ids); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// sanitizeFileName keeps only the base name and strips path separators
// so object keys cannot escape the uploads prefix.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimSpace(path.Base("/" + name))
}

// S3Bucket implements ObjectStore against a real S3-compatible
// endpoint.
type S3Bucket struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Bucket dials the endpoint from the configuration. Path-style
// addressing keeps it compatible with MinIO and other self-hosted
// stores.
func NewS3Bucket(ctx context.Context, cfg *appconfig.Config) (*S3Bucket, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = &cfg.S3.Endpoint
		}
		o.UsePathStyle = true
	})
	return &S3Bucket{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3.Bucket,
	}, nil
}

func (b *S3Bucket) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := b.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (b *S3Bucket) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(downloadURLExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (b *S3Bucket) DeleteObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i := range keys {
		objects[i] = types.ObjectIdentifier{Key: &keys[i]}
	}
	_, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &b.bucket,
		Delete: &types.Delete{Objects: objects},
	})
	return err
}
