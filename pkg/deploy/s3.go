package deploy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client the uploader needs. Tests supply
// a fake; production code passes *s3.Client.
type S3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader pushes a built site directory to an S3 bucket.
type Uploader struct {
	client S3API
	bucket string
	prefix string
	logger *slog.Logger
}

// NewUploader creates an uploader targeting the given bucket. The prefix
// is prepended to every object key.
func NewUploader(client S3API, bucket, prefix string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.TrimSuffix(prefix, "/"),
		logger: logger,
	}
}

// NewClient resolves AWS credentials from the environment and returns an
// S3 client for the given region.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("deploy: loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// UploadDir uploads every regular file under dir, keyed by its relative
// path. It returns the number of uploaded files; the first failure
// aborts the walk.
func (u *Uploader) UploadDir(ctx context.Context, dir string) (int, error) {
	uploaded := 0
	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := u.UploadFile(ctx, key, f); err != nil {
			return fmt.Errorf("deploy: uploading %s: %w", key, err)
		}
		uploaded++
		return nil
	})
	return uploaded, err
}

// UploadFile uploads one object. The content type is inferred from the
// key's extension, and fingerprinted assets get a long-lived cache
// header.
func (u *Uploader) UploadFile(ctx context.Context, key string, body io.Reader) error {
	objectKey := key
	if u.prefix != "" {
		objectKey = u.prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(objectKey),
		Body:         body,
		ContentType:  aws.String(contentTypeFor(key)),
		CacheControl: aws.String(cacheControlFor(key)),
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return err
	}
	u.logger.Debug("uploaded object", "bucket", u.bucket, "key", objectKey)
	return nil
}

// contentTypeFor infers a MIME type from the file extension.
func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// cacheControlFor picks a cache policy: HTML revalidates on every
// request, fingerprinted assets are immutable, everything else gets a
// short cache.
func cacheControlFor(key string) string {
	if strings.HasSuffix(key, ".html") || !strings.Contains(path.Base(key), ".") {
		return "no-cache"
	}
	if isFingerprinted(key) {
		return "public, max-age=31536000, immutable"
	}
	return "public, max-age=3600"
}

// isFingerprinted reports whether a file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(key string) bool {
	parts := strings.Split(path.Base(key), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
