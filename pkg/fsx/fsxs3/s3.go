package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
)

// Client is the subset of *s3.Client used by the file system
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem stores files in a single bucket under a key prefix
type S3FileSystem struct {
	client    Client
	bucket    string
	prefix    string
	publicURL string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

// Option customises an S3FileSystem
type Option func(*S3FileSystem)

// WithPublicURL sets the base URL objects are served from (CDN, custom domain).
// It must point at the bucket root.
func WithPublicURL(base string) Option {
	return func(f *S3FileSystem) {
		if base != "" {
			f.publicURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewS3FileSystem creates a new S3-backed file system
func NewS3FileSystem(client Client, bucket, prefix string, opts ...Option) *S3FileSystem {
	f := &S3FileSystem{
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		publicURL: fmt.Sprintf("https://%s.s3.amazonaws.com", bucket),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *S3FileSystem) Join(elem ...string) string {
	return fsx.JoinPath(elem...)
}

// key maps a store path or public URL to the bucket key
func (f *S3FileSystem) key(name string) string {
	if rest, ok := fsx.TrimBaseURL(f.publicURL, name); ok {
		return rest
	}
	name = strings.TrimPrefix(name, "/")
	if f.prefix == "" || strings.HasPrefix(name, f.prefix+"/") {
		return name
	}
	return f.prefix + "/" + name
}

func (f *S3FileSystem) URL(name string) string {
	return f.publicURL + "/" + f.key(name)
}

func (f *S3FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(f.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

func (f *S3FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fsx.ErrNotExist
		}
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	return out.Body, nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, name string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", name, err)
	}
	return nil
}
