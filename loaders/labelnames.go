package loaders

import (
	"bufio"
	"context"
	"strings"
)

// LoadLabelNames reads one label name per line (empty lines allowed)
// from an uncompressed file at path.
func LoadLabelNames(ctx context.Context, path string) ([]string, error) {
	src, err := openPlain(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabelNames(src)
}

// LoadLabelNamesGzip reads label names from a gzip'd file at path.
func LoadLabelNamesGzip(ctx context.Context, path string) ([]string, error) {
	src, err := openGzipFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabelNames(src)
}

// LoadLabelNamesGzipBuffer reads label names from an in-memory gzip'd
// buffer.
func LoadLabelNamesGzipBuffer(buf []byte) ([]string, error) {
	src, err := openGzipBuffer(buf)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabelNames(src)
}

func parseLabelNames(src *source) ([]string, error) {
	scanner := bufio.NewScanner(src.r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var out []string
	for scanner.Scan() {
		out = append(out, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
