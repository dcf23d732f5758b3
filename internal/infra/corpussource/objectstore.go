package corpussource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

const maxCorpusObjectSize = 16 << 20

// ObjectSource reads a corpus document from S3-compatible storage.
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
}

// ObjectSourceOptions configures NewObjectSource.
type ObjectSourceOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
}

// NewObjectSource constructs the source.
func NewObjectSource(opts ObjectSourceOptions) (*ObjectSource, error) {
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(opts.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{client: client, bucket: opts.Bucket, key: opts.Key}, nil
}

// Fetch implements faq.CorpusSource.
func (s *ObjectSource) Fetch(ctx context.Context) ([]faq.Entry, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get corpus object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxCorpusObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read corpus object: %w", err)
	}
	if len(data) > maxCorpusObjectSize {
		return nil, fmt.Errorf("corpus object exceeds %d bytes", maxCorpusObjectSize)
	}
	return Decode(s.key, data)
}

// Describe implements faq.CorpusSource.
func (s *ObjectSource) Describe() string {
	return fmt.Sprintf("objectstore:%s/%s", s.bucket, s.key)
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ faq.CorpusSource = (*ObjectSource)(nil)
