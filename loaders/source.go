package loaders

import (
	"bytes"
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// source is an opened input stream plus the cleanup to run once a
// parser has consumed it.
type source struct {
	r     io.Reader
	close func() error
}

// openPlain opens path as an uncompressed file.
func openPlain(ctx context.Context, path string) (*source, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &source{
		r:     f.Reader(ctx),
		close: func() error { return f.Close(ctx) },
	}, nil
}

// openGzipFile opens path as a gzip-compressed file.
func openGzipFile(ctx context.Context, path string) (*source, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f.Reader(ctx))
	if err != nil {
		_ = f.Close(ctx)
		return nil, err
	}
	return &source{
		r: gz,
		close: func() error {
			gzErr := gz.Close()
			fErr := f.Close(ctx)
			if gzErr != nil {
				return gzErr
			}
			return fErr
		},
	}, nil
}

// openGzipBuffer wraps an in-memory gzip'd buffer, for callers that
// already have the compressed bytes (e.g. fetched from a blob store)
// rather than a path file.Open can reach.
func openGzipBuffer(buf []byte) (*source, error) {
	gz, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	return &source{r: gz, close: gz.Close}, nil
}
