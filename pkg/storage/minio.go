package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

const DefaultMaxImageBytes = 5 * 1024 * 1024

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrEmptyImage       = errors.New("image is empty")
)

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ObjectPutter is the part of the MinIO client the store writes through.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicURL prefixes returned object URLs; defaults to the endpoint.
	PublicURL string
	MaxBytes  int64
}

// ImageStore keeps user-uploaded images in a bucket and hands back their
// public URLs.
type ImageStore struct {
	client    ObjectPutter
	bucket    string
	publicURL string
	maxBytes  int64
	log       zerolog.Logger
}

// NewMinioImageStore connects to MinIO and makes sure the bucket exists.
func NewMinioImageStore(ctx context.Context, cfg Config, log zerolog.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	if cfg.PublicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return NewImageStore(client, cfg, log), nil
}

func NewImageStore(client ObjectPutter, cfg Config, log zerolog.Logger) *ImageStore {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		maxBytes:  maxBytes,
		log:       log.With().Str("component", "storage").Logger(),
	}
}

// ValidateImage checks the file extension and size and returns the
// normalized extension.
func ValidateImage(filename string, size, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
	if size <= 0 {
		return "", ErrEmptyImage
	}
	if size > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, size, maxBytes)
	}
	return ext, nil
}

func ObjectKey(ext string) string {
	return "images/" + uuid.NewString() + ext
}

// UploadImage validates and stores the image, returning its public URL.
func (s *ImageStore) UploadImage(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	ext, err := ValidateImage(filename, size, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := ObjectKey(ext)
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: imageContentTypes[ext],
	})
	if err != nil {
		s.log.Error().Err(err).Str("object", key).Msg("upload image")
		return "", fmt.Errorf("upload image: %w", err)
	}

	s.log.Info().Str("object", key).Int64("size", size).Msg("image uploaded")
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}
