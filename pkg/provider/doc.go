// Package provider gives read-only access to a content root: the file
// hierarchy that holds localized views and string tables.
//
// A [Provider] answers three questions: does a path exist (and is it a
// directory), what does a directory contain, and what are a file's bytes.
// Implementations:
//
//   - [NewFS] wraps any [io/fs.FS] (os.DirFS, embed.FS, fstest.MapFS)
//   - [NewBilly] wraps a go-billy filesystem (memfs, osfs)
//   - [NewS3] reads an S3-compatible bucket through aws-sdk-go-v2
//   - [NewMinio] reads a MinIO bucket through minio-go
//
// Directory listings are always sorted by name, so callers that pick the
// "first" matching entry behave the same on every backend.
//
// Missing paths are reported with an error wrapping [ErrNotExist]:
//
//	info, err := p.Stat(ctx, "Views/page.en.html")
//	if errors.Is(err, provider.ErrNotExist) {
//	    // no such file
//	}
package provider
