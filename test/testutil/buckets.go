package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

const VideosBucket = "videos"

// ResetVideosBucket empties the videos bucket, creating it when missing.
// The returned func empties it again.
func ResetVideosBucket(client *minio.Client) (func() error, error) {
	ctx := context.Background()

	empty := func() error {
		for obj := range client.ListObjects(ctx, VideosBucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				return fmt.Errorf("list %q: %w", VideosBucket, obj.Err)
			}
			if err := client.RemoveObject(ctx, VideosBucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
				return fmt.Errorf("remove %q: %w", obj.Key, err)
			}
		}
		return nil
	}

	exists, err := client.BucketExists(ctx, VideosBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, VideosBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("could not create bucket %q: %w", VideosBucket, err)
		}
	} else if err := empty(); err != nil {
		return nil, err
	}

	return empty, nil
}
