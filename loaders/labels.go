package loaders

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// LoadLabels reads one integer label per line from an uncompressed
// file at path.
func LoadLabels(ctx context.Context, path string) ([]int, error) {
	src, err := openPlain(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabels(src)
}

// LoadLabelsGzip reads one integer label per line from a gzip'd file
// at path.
func LoadLabelsGzip(ctx context.Context, path string) ([]int, error) {
	src, err := openGzipFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabels(src)
}

// LoadLabelsGzipBuffer reads one integer label per line from an
// in-memory gzip'd buffer.
func LoadLabelsGzipBuffer(buf []byte) ([]int, error) {
	src, err := openGzipBuffer(buf)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseLabels(src)
}

func parseLabels(src *source) ([]int, error) {
	scanner := bufio.NewScanner(src.r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var out []int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, errors.E(errors.Invalid, "loaders.LoadLabels: line ", lineNo, ": ", err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "loaders.LoadLabels: scan failed")
	}
	return out, nil
}
