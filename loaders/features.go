package loaders

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/grailbio/base/errors"
)

// Feature is one gene feature row: an Ensembl gene identifier and its
// symbol, either of which may be empty.
type Feature struct {
	EnsemblID string
	Symbol    string
}

// LoadFeatures reads a features CSV (exactly two fields per line:
// ensembl_id,symbol) from an uncompressed file at path.
func LoadFeatures(ctx context.Context, path string) ([]Feature, error) {
	src, err := openPlain(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseFeatures(src)
}

// LoadFeaturesGzip reads a features CSV from a gzip'd file at path.
func LoadFeaturesGzip(ctx context.Context, path string) ([]Feature, error) {
	src, err := openGzipFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseFeatures(src)
}

// LoadFeaturesGzipBuffer reads a features CSV from an in-memory
// gzip'd buffer.
func LoadFeaturesGzipBuffer(buf []byte) ([]Feature, error) {
	src, err := openGzipBuffer(buf)
	if err != nil {
		return nil, err
	}
	defer src.close()
	return parseFeatures(src)
}

func parseFeatures(src *source) ([]Feature, error) {
	r := csv.NewReader(src.r)
	r.FieldsPerRecord = 2
	r.ReuseRecord = true

	var out []Feature
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(errors.Invalid, "loaders.LoadFeatures: ", err)
		}
		out = append(out, Feature{EnsemblID: rec[0], Symbol: rec[1]})
	}
	return out, nil
}
