// Package storage wraps the object store holding submission images.
package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ttreviews/model"
)

// AssetStore removes submission images from the configured bucket. The
// moderation workflow calls it best-effort during rejections.
type AssetStore struct {
	client *minio.Client
	bucket string
}

// NewAssetStore connects to the object storage endpoint from config.
func NewAssetStore(cfg model.Assets) (*AssetStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create object storage client: %w", err)
	}
	return &AssetStore{client: client, bucket: cfg.Bucket}, nil
}

// Remove deletes one stored object by key.
func (a *AssetStore) Remove(ctx context.Context, key string) error {
	return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
}
