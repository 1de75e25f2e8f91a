package loaders

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/file"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, ctx context.Context, path string, contents []byte) {
	t.Helper()
	f, err := file.Create(ctx, path)
	require.NoError(t, err)
	_, err = f.Writer(ctx).Write(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close(ctx))
}

func TestLoadLabelsRoundTripsThroughPlainAndGzipFiles(t *testing.T) {
	ctx := context.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	plainPath := filepath.Join(tmpdir, "labels.txt")
	writeFile(t, ctx, plainPath, []byte("0\n1\n1\n2\n"))
	labels, err := LoadLabels(ctx, plainPath)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 2}, labels)

	gzipPath := filepath.Join(tmpdir, "labels.txt.gz")
	writeFile(t, ctx, gzipPath, gzipBuf(t, "0\n1\n1\n2\n"))
	gzipLabels, err := LoadLabelsGzip(ctx, gzipPath)
	require.NoError(t, err)
	assert.Equal(t, labels, gzipLabels)
}

func TestLoadFeaturesRoundTripsThroughPlainFile(t *testing.T) {
	ctx := context.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "features.csv")
	writeFile(t, ctx, path, []byte("ENSG0001,GENE1\nENSG0002,GENE2\n"))

	features, err := LoadFeatures(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []Feature{
		{EnsemblID: "ENSG0001", Symbol: "GENE1"},
		{EnsemblID: "ENSG0002", Symbol: "GENE2"},
	}, features)
}

func TestLoadRankingsMissingFileIsError(t *testing.T) {
	ctx := context.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	_, err := LoadRankings(ctx, filepath.Join(tmpdir, "missing.csv"), 3)
	assert.Error(t, err)
}
