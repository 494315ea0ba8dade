package mediastore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultRegion = "ap-southeast-1"

// presignExpiry is the longest lifetime S3 signature v4 allows.
const presignExpiry = 7 * 24 * time.Hour

// Reference points at a stored object. URL is the client-facing address,
// Bucket/Key identify the object for later deletion.
type Reference struct {
	Bucket string
	Key    string
	URL    string
}

// PublicID is the bucket/key pair serialized the way clients send it back
// on deletion.
func (r Reference) PublicID() string {
	return r.Bucket + "/" + r.Key
}

// SplitPublicID splits a "<bucket>/<key>" public id into its parts.
func SplitPublicID(publicID string) (bucket, key string, err error) {
	parts := strings.SplitN(publicID, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid public id %q", publicID)
	}
	return parts[0], parts[1], nil
}

// UploadError is returned when a transfer to the object store fails.
type UploadError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Config configures the object-store connection. With PresignedURLs the
// store hands out time-limited GET URLs instead of public-endpoint links,
// for deployments whose buckets stay private.
type Config struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	PresignedURLs  bool
}

// Store uploads and removes media objects on a MinIO-compatible store.
type Store struct {
	client         *minio.Client
	publicEndpoint string
	presign        bool
}

// New connects to the object store.
func New(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}
	return &Store{
		client:         client,
		publicEndpoint: strings.TrimRight(cfg.PublicEndpoint, "/"),
		presign:        cfg.PresignedURLs,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist. Two concurrent
// callers may both attempt creation; "already exists" counts as success.
func (s *Store) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: defaultRegion})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// Store uploads the stream under a generated key and returns a reference.
// It returns only after the transfer has fully completed.
func (s *Store) Store(ctx context.Context, r io.Reader, bucket, contentType string) (*Reference, error) {
	if err := s.EnsureBucket(ctx, bucket); err != nil {
		return nil, err
	}

	key := uuid.NewString()
	_, err := s.client.PutObject(ctx, bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, &UploadError{Bucket: bucket, Key: key, Err: err}
	}

	objectURL := ObjectURL(s.publicEndpoint, bucket, key, contentType)
	if s.presign {
		objectURL, err = s.Presign(ctx, bucket, key, presignExpiry)
		if err != nil {
			// The object is up but unreachable without a URL, reclaim it.
			if rmErr := s.Remove(ctx, bucket, key); rmErr != nil {
				err = fmt.Errorf("%w (orphaned object %s/%s: %v)", err, bucket, key, rmErr)
			}
			return nil, err
		}
	}

	return &Reference{
		Bucket: bucket,
		Key:    key,
		URL:    objectURL,
	}, nil
}

// Presign returns a time-limited GET URL for the object.
func (s *Store) Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// Remove deletes the object. A missing object or bucket counts as success.
func (s *Store) Remove(ctx context.Context, bucket, key string) error {
	err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NoSuchBucket" {
			return nil
		}
		return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
	}
	return nil
}

// ObjectURL builds the client-facing address for a stored object. Images and
// videos go through different frontend media routes.
func ObjectURL(publicEndpoint, bucket, key, contentType string) string {
	if strings.Contains(contentType, "image") {
		return publicEndpoint + "/v?filename=" + bucket + "/" + key
	}
	return publicEndpoint + "/video?title=" + bucket + "/" + key
}
