package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory bucket answering the three calls the provider makes.
type fakeS3 struct {
	objects map[string]string
	pageLen int
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)

	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Flatten files and common prefixes into one ordered stream, then page it.
	type item struct {
		key   string
		isDir bool
	}
	var items []item
	seen := map[string]bool{}
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if delim != "" {
			if i := strings.Index(rest, delim); i >= 0 {
				cp := prefix + rest[:i+1]
				if !seen[cp] {
					seen[cp] = true
					items = append(items, item{key: cp, isDir: true})
				}
				continue
			}
		}
		items = append(items, item{key: k})
	}

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		_, _ = fmt.Sscanf(tok, "%d", &start)
	}
	limit := f.pageLen
	if in.MaxKeys != nil && int(*in.MaxKeys) < limit {
		limit = int(*in.MaxKeys)
	}
	end := min(start+limit, len(items))

	out := &s3.ListObjectsV2Output{}
	for _, it := range items[start:end] {
		if it.isDir {
			out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(it.key)})
		} else {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(it.key)})
		}
	}
	if end < len(items) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(fmt.Sprintf("%d", end))
	}
	return out, nil
}

func newFakeS3Provider(prefix string) *S3 {
	objects := map[string]string{
		"Views/page.en-US.html": "en-US",
		"Views/page.html":       "neutral",
		"Views/fr/page.html":    "fr",
		"Views/de/":             "",
		"Strings/common.json":   "{}",
	}
	if prefix != "" {
		prefixed := make(map[string]string, len(objects))
		for k, v := range objects {
			prefixed[prefix+"/"+k] = v
		}
		objects = prefixed
	}

	return &S3{
		client: &fakeS3{objects: objects, pageLen: 2},
		cfg:    S3Config{Bucket: "content", Prefix: prefix},
	}
}

func TestNewS3(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		p, err := NewS3(S3Config{
			Bucket:    "content",
			AccessKey: "test-access-key",
			SecretKey: "test-secret-key",
			Endpoint:  "http://localhost:9000",
			Prefix:    "/site/",
			PathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, p.client)
		require.Equal(t, DefaultS3Region, p.cfg.Region)
		require.Equal(t, "site", p.cfg.Prefix)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		p, err := NewS3(S3Config{})
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, p)
	})
}

func TestS3Provider(t *testing.T) {
	t.Parallel()

	for _, prefix := range []string{"", "site"} {
		t.Run("prefix="+prefix, func(t *testing.T) {
			t.Parallel()

			p := newFakeS3Provider(prefix)
			ctx := context.Background()

			info, err := p.Stat(ctx, "Views/page.html")
			require.NoError(t, err)
			require.Equal(t, Info{Name: "page.html"}, info)

			info, err = p.Stat(ctx, "Views/fr")
			require.NoError(t, err)
			require.Equal(t, Info{Name: "fr", IsDir: true}, info)

			_, err = p.Stat(ctx, "Views/es")
			require.ErrorIs(t, err, ErrNotExist)

			infos, err := p.ReadDir(ctx, "Views")
			require.NoError(t, err)
			require.Equal(t, []Info{
				{Name: "de", IsDir: true},
				{Name: "fr", IsDir: true},
				{Name: "page.en-US.html"},
				{Name: "page.html"},
			}, infos)

			root, err := p.ReadDir(ctx, "")
			require.NoError(t, err)
			require.Equal(t, []Info{{Name: "Strings", IsDir: true}, {Name: "Views", IsDir: true}}, root)

			empty, err := p.ReadDir(ctx, "Views/de")
			require.NoError(t, err)
			require.Empty(t, empty)

			_, err = p.ReadDir(ctx, "Missing")
			require.ErrorIs(t, err, ErrNotExist)

			_, err = p.ReadDir(ctx, "Views/page.html")
			require.ErrorIs(t, err, ErrNotDir)

			rc, err := p.Open(ctx, "Views/fr/page.html")
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			require.Equal(t, "fr", string(data))

			_, err = p.Open(ctx, "Views/none.html")
			require.ErrorIs(t, err, ErrNotExist)
		})
	}
}

// mockAPIError implements smithy.APIError for testing.
type mockAPIError struct {
	code string
}

func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.code }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (e *mockAPIError) Error() string                 { return "api error " + e.code }

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want error
	}{
		{err: &mockAPIError{code: "NoSuchKey"}, want: ErrNotExist},
		{err: &mockAPIError{code: "NotFound"}, want: ErrNotExist},
		{err: &mockAPIError{code: "NoSuchBucket"}, want: ErrNotExist},
		{err: &mockAPIError{code: "AccessDenied"}, want: ErrAccessDenied},
		{err: &mockAPIError{code: "Forbidden"}, want: ErrAccessDenied},
		{err: &mockAPIError{code: "SlowDown"}, want: ErrRemote},
		{err: &types.NoSuchKey{}, want: ErrNotExist},
		{err: fmt.Errorf("wrapped: %w", &types.NotFound{}), want: ErrNotExist},
		{err: errors.New("connection reset"), want: ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, wrapS3Error(tt.err, ErrRemote), tt.want)
		})
	}
}
