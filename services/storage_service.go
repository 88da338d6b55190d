// File: /services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"photoshare-api/config"
	"photoshare-api/logging"
)

const (
	FolderPhotos  = "photos"
	FolderAvatars = "avatars"
)

// StoredFile is where an upload ended up. URL is what clients load; Key is
// what Delete takes.
type StoredFile struct {
	URL         string
	Key         string
	ContentType string
}

type FileStorage interface {
	Save(ctx context.Context, folder, prefix string, data []byte) (*StoredFile, error)
	Delete(ctx context.Context, key string) error
}

// NewFileStorage builds the backend named by cfg.Driver.
func NewFileStorage(ctx context.Context, cfg *config.StorageConfig) (FileStorage, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioStorage(ctx, cfg)
	default:
		return NewLocalStorage(cfg.UploadDir, cfg.MaxUploadSize)
	}
}

// sniffImage checks data is a non-empty image no larger than maxSize and
// returns its detected MIME type.
func sniffImage(data []byte, maxSize int64) (*mimetype.MIME, error) {
	if len(data) == 0 {
		return nil, invalidArgument("No file was uploaded")
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, invalidArgument("File exceeds the %d MB limit", maxSize/(1024*1024))
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, invalidArgument("Only image files can be uploaded")
	}
	return mtype, nil
}

func objectName(prefix string, mtype *mimetype.MIME) string {
	return fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8], mtype.Extension())
}

// LocalStorage writes uploads under a directory that is served at /uploads.
type LocalStorage struct {
	root    string
	maxSize int64
	logger  *zap.Logger
}

func NewLocalStorage(root string, maxSize int64) (*LocalStorage, error) {
	for _, folder := range []string{FolderPhotos, FolderAvatars} {
		if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStorage{root: root, maxSize: maxSize, logger: logging.WithComponent("local_storage")}, nil
}

func (s *LocalStorage) Save(_ context.Context, folder, prefix string, data []byte) (*StoredFile, error) {
	mtype, err := sniffImage(data, s.maxSize)
	if err != nil {
		return nil, err
	}

	name := objectName(prefix, mtype)
	key := path.Join(folder, name)
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(key)), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &StoredFile{URL: "/uploads/" + key, Key: key, ContentType: mtype.String()}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	clean := path.Clean("/" + key)[1:]
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// MinioStorage keeps uploads in an S3-compatible bucket.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	maxSize   int64
}

func NewMinioStorage(ctx context.Context, cfg *config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logging.GetLogger().Info("Created storage bucket", zap.String("bucket", cfg.MinioBucket))
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = (&url.URL{Scheme: scheme, Host: cfg.MinioEndpoint}).String()
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   cfg.MaxUploadSize,
	}, nil
}

func (s *MinioStorage) Save(ctx context.Context, folder, prefix string, data []byte) (*StoredFile, error) {
	mtype, err := sniffImage(data, s.maxSize)
	if err != nil {
		return nil, err
	}

	key := path.Join(folder, objectName(prefix, mtype))
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mtype.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &StoredFile{
		URL:         fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		Key:         key,
		ContentType: mtype.String(),
	}, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}
