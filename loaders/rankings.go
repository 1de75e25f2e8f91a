package loaders

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
)

// LoadRankings reads a rank matrix CSV — numFeatures integer fields
// per line, one line per sample — from an uncompressed file at path.
// Every line must have exactly numFeatures fields; a non-integer or
// empty field is an error.
func LoadRankings(ctx context.Context, path string, numFeatures int) ([][]int, error) {
	src, err := openPlain(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseRankings(src, numFeatures)
}

// LoadRankingsGzip reads a rank matrix CSV from a gzip'd file at path.
func LoadRankingsGzip(ctx context.Context, path string, numFeatures int) ([][]int, error) {
	src, err := openGzipFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseRankings(src, numFeatures)
}

// LoadRankingsGzipBuffer reads a rank matrix CSV from an in-memory
// gzip'd buffer.
func LoadRankingsGzipBuffer(buf []byte, numFeatures int) ([][]int, error) {
	src, err := openGzipBuffer(buf)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseRankings(src, numFeatures)
}

func parseRankings(src *source, numFeatures int) ([][]int, error) {
	r := csv.NewReader(src.r)
	r.FieldsPerRecord = numFeatures

	var out [][]int
	lineNo := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, errors.E(errors.Invalid, "loaders.LoadRankings: line ", lineNo, ": ", err)
		}
		row := make([]int, len(rec))
		for i, field := range rec {
			if field == "" {
				return nil, errors.E(errors.Invalid, "loaders.LoadRankings: line ", lineNo, ": empty field at column ", i)
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.E(errors.Invalid, "loaders.LoadRankings: line ", lineNo, ": ", err)
			}
			row[i] = v
		}
		out = append(out, row)
	}
	return out, nil
}
