package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader writes objects to a Google Cloud Storage bucket.
type GCSUploader struct {
	client *gcs.Client
	bucket string
}

// NewGCSUploader authenticates with the service account file when one is given,
// otherwise with application default credentials.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile string) (*GCSUploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		path := credentialsFile
		if !filepath.IsAbs(path) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(wd, path)
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, path))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, obj *Object) (string, error) {
	objectName := "uploads/" + obj.Name
	w := u.client.Bucket(u.bucket).Object(objectName).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = obj.ContentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, obj.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }
