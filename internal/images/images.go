// Package images is the file/image collaborator: an S3-compatible object
// store holding item cover images and user avatars. The query layer never
// touches it; handlers translate intents like "locator renamed" or "user
// removed" into the rename/delete calls here.
package images

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"catalog_system/internal/config"
)

// ItemKey is the object key for an item's cover image, keyed by locator.
func ItemKey(locator string) string {
	return "items/" + locator
}

// AvatarKey is the object key for a user's avatar, keyed by username.
func AvatarKey(username string) string {
	return "avatars/" + username
}

// ErrDisabled is returned by Upload when no object store is configured.
// Removal and rename intents stay no-ops so entity mutations never depend on
// storage being present, but an upload must not pretend to succeed.
var ErrDisabled = errors.New("image storage is not configured")

// Store is a thin client over one bucket. A Store built without storage
// configuration is disabled: intents are no-ops and uploads are refused, so
// local setups can run without an object store.
type Store struct {
	client *s3.Client
	bucket string
}

// New builds the image store from configuration. Works against any
// S3-compatible endpoint (path-style addressing, static credentials).
func New(cfg *config.Config) (*Store, error) {
	if cfg.StorageEndpoint == "" || cfg.StorageBucket == "" {
		return &Store{}, nil // disabled
	}
	endpoint := strings.TrimSuffix(cfg.StorageEndpoint, "/")
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, "")),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &Store{client: client, bucket: cfg.StorageBucket}, nil
}

// Enabled reports whether uploads will actually be stored.
func (s *Store) Enabled() bool {
	return s.client != nil
}

// Upload stores an object under key with the given content type. Fails with
// ErrDisabled when no object store is configured.
func (s *Store) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	if s.client == nil {
		return ErrDisabled
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return err
}

// Remove deletes an object. Deleting an absent object is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Rename moves an object to a new key (copy then delete; S3 has no rename).
// A missing source is ignored so a rename intent for an entity that never
// had an image is a no-op.
func (s *Store) Rename(ctx context.Context, oldKey, newKey string) error {
	if s.client == nil || oldKey == newKey {
		return nil
	}
	exists, err := s.Exists(ctx, oldKey)
	if err != nil || !exists {
		return err
	}
	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + oldKey),
		Key:        aws.String(newKey),
	})
	if err != nil {
		return err
	}
	return s.Remove(ctx, oldKey)
}

// Exists reports whether an object is present under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if s.client == nil {
		return false, nil
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
