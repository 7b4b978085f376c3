package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DefaultS3Region is used when S3Config.Region is empty.
const DefaultS3Region = "us-east-1"

// S3Config holds the settings of an S3-compatible content root.
type S3Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"S3_BUCKET"`

	// AccessKey is the access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL for MinIO or other S3-compatible services.
	Endpoint string `env:"S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every key, so several content roots can share a bucket.
	Prefix string `env:"S3_PREFIX"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE" envDefault:"false"`
}

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultS3Region
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

func (c *S3Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// s3API is the subset of the S3 client used by the provider.
type s3API interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 serves a read-only content root from S3-compatible object storage.
// Directories are key prefixes ending in "/".
type S3 struct {
	client s3API
	cfg    S3Config
}

// NewS3 creates an S3 provider with static credentials.
func NewS3(cfg S3Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// key maps a provider path to an object key. The root maps to the prefix.
func (s *S3) key(p string) string {
	p = Clean(p)
	if p == "." {
		return s.cfg.Prefix
	}
	if s.cfg.Prefix == "" {
		return p
	}
	return s.cfg.Prefix + "/" + p
}

// dirKey maps a provider path to the listing prefix of a directory.
func (s *S3) dirKey(p string) string {
	k := s.key(p)
	if k == "" {
		return ""
	}
	return k + "/"
}

// Stat implements Provider. Objects are files; a non-empty key prefix is a directory.
func (s *S3) Stat(ctx context.Context, p string) (Info, error) {
	p = Clean(p)
	if p == "." {
		return Info{Name: ".", IsDir: true}, nil
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(p)),
	})
	if err == nil {
		return Info{Name: path.Base(p), IsDir: false}, nil
	}
	if err = wrapS3Error(err, ErrRemote); !errors.Is(err, ErrNotExist) {
		return Info{}, err
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.cfg.Bucket),
		Prefix:  aws.String(s.dirKey(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return Info{}, wrapS3Error(err, ErrRemote)
	}
	if len(out.Contents) == 0 && len(out.CommonPrefixes) == 0 {
		return Info{}, fmt.Errorf("%w: stat %s", ErrNotExist, p)
	}

	return Info{Name: path.Base(p), IsDir: true}, nil
}

// ReadDir implements Provider using a delimited ListObjectsV2 listing.
func (s *S3) ReadDir(ctx context.Context, p string) ([]Info, error) {
	p = Clean(p)
	prefix := s.dirKey(p)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.cfg.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var infos []Info
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, ErrRemote)
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name != "" {
				infos = append(infos, Info{Name: name, IsDir: true})
			}
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			// Skip directory placeholder objects.
			if name != "" && !strings.HasSuffix(name, "/") {
				infos = append(infos, Info{Name: name, IsDir: false})
			}
		}
	}

	if len(infos) == 0 && p != "." {
		info, err := s.Stat(ctx, p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir {
			return nil, ErrNotDir
		}
	}

	return sortInfos(infos), nil
}

// Open implements Provider.
func (s *S3) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrRemote)
	}
	return out.Body, nil
}

// wrapS3Error wraps S3 errors with the provider sentinels.
// It checks both API error codes and typed errors.
// The original error is formatted with %v so callers match on sentinels, not AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %v", ErrNotExist, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotExist, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}

var _ Provider = (*S3)(nil)
