// Package minio stores uploaded images in an S3-compatible bucket.
package minio

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/clinic-server/internal/model"
)

// objectAPI is the subset of *minio.Client used by ImageStore, so tests can fake it.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// clientAdapter narrows GetObject's *minio.Object result to io.ReadCloser.
type clientAdapter struct {
	*minio.Client
}

func (a clientAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := a.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

var _ model.Storage = (*ImageStore)(nil)

// ImageStore keeps image objects under a key prefix inside one bucket.
type ImageStore struct {
	api    objectAPI
	bucket string
	prefix string
}

// Options configures an ImageStore.
type Options struct {
	Bucket string
	Region string
	// Prefix is prepended to every object key, e.g. "images".
	Prefix string
}

// NewImageStore creates an ImageStore on top of a real *minio.Client.
func NewImageStore(ctx context.Context, client *minio.Client, opts Options) (*ImageStore, error) {
	return newImageStore(ctx, clientAdapter{Client: client}, opts)
}

func newImageStore(ctx context.Context, api objectAPI, opts Options) (*ImageStore, error) {
	s := &ImageStore{
		api:    api,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
	}

	if err := s.ensureBucket(ctx, opts.Region); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func (s *ImageStore) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *ImageStore) objectName(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Upload stores reader under key. A negative size streams with an unknown length.
func (s *ImageStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if size < 0 {
		size = -1
	}
	_, err := s.api.PutObject(ctx, s.bucket, s.objectName(key), reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download opens the object stored under key.
func (s *ImageStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

// Delete removes the object stored under key.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	err := s.api.RemoveObject(ctx, s.bucket, s.objectName(key), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether an object is stored under key.
func (s *ImageStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.api.StatObject(ctx, s.bucket, s.objectName(key), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}
