package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/shopdata/config"
)

// FromConfig returns the disk named by STORAGE_DISK.
func FromConfig(ctx context.Context) (Disk, error) {
	switch name := config.StorageDisk(); name {
	case "local":
		return NewLocal(config.StorageLocalRoot())
	case "s3":
		return NewS3(ctx, S3Config{
			Bucket:   config.S3Bucket(),
			Region:   config.S3Region(),
			Key:      config.S3Key(),
			Secret:   config.S3Secret(),
			Endpoint: config.S3Endpoint(),
			Prefix:   config.S3Prefix(),
		})
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", name)
	}
}
