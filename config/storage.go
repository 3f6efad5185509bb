package config

import (
	"context"
	"fmt"

	"github.com/ishala/illegal-waste-reporter-BE/storage"
)

// NewObjectStore builds the blob store selected by STORAGE_DRIVER.
func NewObjectStore(ctx context.Context, cfg *Config) (storage.ObjectStore, error) {
	switch cfg.StorageDriver {
	case StorageDriverMinio:
		return storage.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucketName, cfg.MinioSecure)
	case StorageDriverS3:
		return storage.NewS3Store(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3BucketName,
			UsePathStyle:    cfg.S3Endpoint != "",
		})
	case StorageDriverMemory:
		return storage.NewMemoryStore(""), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
