package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader stores image bytes and returns a public download URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, data []byte, contentType string) (string, error)
	Close() error
}

type gcsUploader struct {
	client *gcs.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket string) (Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("missing storage bucket")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &gcsUploader{client: client, bucket: bucket}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	token := uuid.NewString()
	objectPath := path.Join(folder, uuid.NewString())
	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, escapedPath, token)
	return publicURL, nil
}

func (u *gcsUploader) Close() error {
	return u.client.Close()
}
