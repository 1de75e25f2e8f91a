package loaders

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/singlepp/markers"
)

// LoadMarkers reads a pairwise marker TSV (at least three fields per
// line: label_a, label_b, then one or more gene indices) from an
// uncompressed file at path. numLabels and numGenes bound the label
// and gene indices the file may reference; any (label_a, label_b) pair
// appearing twice is an error.
func LoadMarkers(ctx context.Context, path string, numLabels, numGenes int) (markers.Markers, error) {
	src, err := openPlain(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseMarkers(src, numLabels, numGenes)
}

// LoadMarkersGzip reads a pairwise marker TSV from a gzip'd file at
// path.
func LoadMarkersGzip(ctx context.Context, path string, numLabels, numGenes int) (markers.Markers, error) {
	src, err := openGzipFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseMarkers(src, numLabels, numGenes)
}

// LoadMarkersGzipBuffer reads a pairwise marker TSV from an in-memory
// gzip'd buffer.
func LoadMarkersGzipBuffer(buf []byte, numLabels, numGenes int) (markers.Markers, error) {
	src, err := openGzipBuffer(buf)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseMarkers(src, numLabels, numGenes)
}

func parseMarkers(src *source, numLabels, numGenes int) (markers.Markers, error) {
	r := csv.NewReader(src.r)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	out := make(markers.Markers, numLabels)
	for i := range out {
		out[i] = make([][]int, numLabels)
	}
	seen := make(map[[2]int]bool)

	lineNo := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": ", err)
		}
		if len(rec) < 3 {
			return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": need at least 3 fields, got ", len(rec))
		}

		a, err := strconv.Atoi(rec[0])
		if err != nil || a < 0 || a >= numLabels {
			return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": invalid label_a ", rec[0])
		}
		b, err := strconv.Atoi(rec[1])
		if err != nil || b < 0 || b >= numLabels {
			return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": invalid label_b ", rec[1])
		}

		key := [2]int{a, b}
		if seen[key] {
			return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": pair (", a, ", ", b, ") appears more than once")
		}
		seen[key] = true

		genes := make([]int, len(rec)-2)
		for i, field := range rec[2:] {
			g, err := strconv.Atoi(field)
			if err != nil || g < 0 || g >= numGenes {
				return nil, errors.E(errors.Invalid, "loaders.LoadMarkers: line ", lineNo, ": invalid gene index ", field)
			}
			genes[i] = g
		}
		out[a][b] = genes
	}

	return out, nil
}
