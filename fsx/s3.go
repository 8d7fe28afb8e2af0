package fsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/upcraft-io/upcraft/logx"
)

// S3 is a FileSystem backed by a single S3 bucket. Paths are object
// keys; directories are key prefixes and only exist implicitly.
type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 creates an S3 backend from an existing client.
func NewS3(client *s3.Client, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

// NewS3FromConfig creates an S3 backend using the default AWS
// credential chain (environment, shared config, instance role).
func NewS3FromConfig(ctx context.Context, bucket string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fsErrors.NewWithCause(ErrIOFailed, err).
			WithDetail("bucket", bucket)
	}
	return &S3{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// ReadFile fetches the whole object into memory.
func (s *S3) ReadFile(ctx context.Context, key string) ([]byte, error) {
	r, err := s.ReadFileStream(ctx, key)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fsErrors.NewWithCause(ErrIOFailed, err).WithDetail("key", key)
	}
	return data, nil
}

// ReadFileStream opens the object body for streaming reads.
func (s *S3) ReadFileStream(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(key)),
	})
	if err != nil {
		return nil, translateS3Error(err, key)
	}
	return out.Body, nil
}

// Stat heads the object.
func (s *S3) Stat(ctx context.Context, key string) (FileInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(key)),
	})
	if err != nil {
		return FileInfo{}, translateS3Error(err, key)
	}

	info := FileInfo{
		Name:        path.Base(key),
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	if out.LastModified != nil {
		info.ModTime = *out.LastModified
	}
	return info, nil
}

// List returns objects directly under the given prefix.
func (s *S3) List(ctx context.Context, prefix string) ([]FileInfo, error) {
	prefix = normalizeKey(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var infos []FileInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translateS3Error(err, prefix)
		}
		for _, cp := range page.CommonPrefixes {
			infos = append(infos, FileInfo{
				Name:  path.Base(strings.TrimSuffix(aws.ToString(cp.Prefix), "/")),
				IsDir: true,
			})
		}
		for _, obj := range page.Contents {
			info := FileInfo{
				Name: path.Base(aws.ToString(obj.Key)),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.ModTime = *obj.LastModified
			}
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// WriteFile uploads data as a single object, overwriting any existing
// object under the same key.
func (s *S3) WriteFile(ctx context.Context, key string, data []byte) error {
	return s.WriteFileStream(ctx, key, bytes.NewReader(data))
}

// WriteFileStream uploads the reader as an object.
func (s *S3) WriteFileStream(ctx context.Context, key string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(key)),
		Body:   r,
	})
	if err != nil {
		return translateS3Error(err, key)
	}
	return nil
}

// CreateDir is a no-op: S3 has no directories, prefixes appear when
// objects are written under them.
func (s *S3) CreateDir(_ context.Context, _ string) error {
	return nil
}

// DeleteFile removes an object.
func (s *S3) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(key)),
	})
	if err != nil {
		return translateS3Error(err, key)
	}
	return nil
}

// Rename copies the object to the new key and deletes the old one.
// The delete is best-effort: a stale source object is logged, not
// surfaced, since the copy already succeeded.
func (s *S3) Rename(ctx context.Context, oldKey, newKey string) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + normalizeKey(oldKey)),
		Key:        aws.String(normalizeKey(newKey)),
	})
	if err != nil {
		return translateS3Error(err, oldKey)
	}

	if err := s.DeleteFile(ctx, oldKey); err != nil {
		logx.Warn("rename: could not delete source object %s: %v", oldKey, err)
	}
	return nil
}

// Join joins key elements with forward slashes.
func (s *S3) Join(elem ...string) string {
	return path.Join(elem...)
}

// Exists heads the object and reports presence.
func (s *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}

func translateS3Error(err error, key string) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return fsErrors.NewWithCause(ErrNotFound, err).WithDetail("key", key)
	}
	return fsErrors.NewWithCause(ErrIOFailed, err).WithDetail("key", key)
}
