package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Uploader stores an uploaded image and returns the stored filename.
// The catalog keeps filenames only; display URLs are derived at the edge.
type Uploader interface {
	Upload(ctx context.Context, originalName, contentType string, r io.Reader) (string, error)
	Close() error
}

type gcsUploader struct {
	client *gcs.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket, credentialsFile string) (Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &gcsUploader{client: client, bucket: bucket}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	name := uuid.NewString() + path.Ext(originalName)
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return name, nil
}

func (u *gcsUploader) Close() error {
	return u.client.Close()
}
