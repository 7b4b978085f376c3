package provider

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds the settings of a MinIO content root.
type MinioConfig struct {
	// Endpoint is the MinIO server address, e.g. "localhost:9000" (required unless Client is set).
	Endpoint string `env:"MINIO_ENDPOINT"`

	// Bucket is the bucket name (required).
	Bucket string `env:"MINIO_BUCKET"`

	// AccessKey is the access key ID.
	AccessKey string `env:"MINIO_ACCESS_KEY"`

	// SecretKey is the secret access key.
	SecretKey string `env:"MINIO_SECRET_KEY"`

	// Prefix is prepended to every object key.
	Prefix string `env:"MINIO_PREFIX"`

	// UseSSL enables HTTPS.
	UseSSL bool `env:"MINIO_USE_SSL" envDefault:"true"`

	// Client is an optional pre-configured client. Connection fields are ignored when set.
	Client *minio.Client `env:"-"`
}

func (c *MinioConfig) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if c.Client != nil {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required when client is not provided", ErrInvalidConfig)
	}
	return nil
}

// Minio serves a read-only content root from a MinIO bucket.
type Minio struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinio creates a MinIO provider. No request is made until the first lookup.
func NewMinio(cfg MinioConfig) (*Minio, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	return &Minio{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (m *Minio) key(p string) string {
	p = Clean(p)
	switch {
	case p == ".":
		return m.prefix
	case m.prefix == "":
		return p
	}
	return m.prefix + "/" + p
}

func (m *Minio) dirKey(p string) string {
	if k := m.key(p); k != "" {
		return k + "/"
	}
	return ""
}

// Stat implements Provider.
func (m *Minio) Stat(ctx context.Context, p string) (Info, error) {
	p = Clean(p)
	if p == "." {
		return Info{Name: ".", IsDir: true}, nil
	}

	_, err := m.client.StatObject(ctx, m.bucket, m.key(p), minio.StatObjectOptions{})
	if err == nil {
		return Info{Name: path.Base(p)}, nil
	}
	if code := minio.ToErrorResponse(err).Code; code != "NoSuchKey" && code != "NotFound" {
		return Info{}, translateMinioError("stat", p, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  m.dirKey(p),
		MaxKeys: 1,
	}) {
		if obj.Err != nil {
			return Info{}, translateMinioError("stat", p, obj.Err)
		}
		return Info{Name: path.Base(p), IsDir: true}, nil
	}

	return Info{}, fmt.Errorf("%w: stat %s", ErrNotExist, p)
}

// ReadDir implements Provider.
func (m *Minio) ReadDir(ctx context.Context, p string) ([]Info, error) {
	p = Clean(p)
	prefix := m.dirKey(p)

	var infos []Info
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, translateMinioError("readdir", p, obj.Err)
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		if name == "" {
			continue
		}
		infos = append(infos, Info{Name: name, IsDir: isDir})
	}

	if len(infos) == 0 && p != "." {
		info, err := m.Stat(ctx, p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir {
			return nil, ErrNotDir
		}
	}

	return sortInfos(infos), nil
}

// Open implements Provider. The object is stat-ed first because
// GetObject reports a missing key only on the first read.
func (m *Minio) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key := m.key(p)
	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, translateMinioError("open", Clean(p), err)
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError("open", Clean(p), err)
	}
	return obj, nil
}

// translateMinioError converts MinIO error responses to provider sentinels.
func translateMinioError(op, p string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %s %s", ErrNotExist, op, p)
	case "AccessDenied":
		return fmt.Errorf("%w: %s %s", ErrAccessDenied, op, p)
	}
	return fmt.Errorf("%w: %s %s: %v", ErrRemote, op, p, err)
}

var _ Provider = (*Minio)(nil)
