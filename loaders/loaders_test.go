package loaders

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBuf(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoadLabelsGzipBuffer(t *testing.T) {
	labels, err := LoadLabelsGzipBuffer(gzipBuf(t, "0\n1\n1\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 2}, labels)
}

func TestLoadLabelsGzipBufferRejectsNonInteger(t *testing.T) {
	_, err := LoadLabelsGzipBuffer(gzipBuf(t, "0\nabc\n"))
	assert.Error(t, err)
}

func TestLoadLabelNamesGzipBufferKeepsEmptyLines(t *testing.T) {
	names, err := LoadLabelNamesGzipBuffer(gzipBuf(t, "T cell\n\nB cell\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"T cell", "", "B cell"}, names)
}

func TestLoadFeaturesGzipBuffer(t *testing.T) {
	features, err := LoadFeaturesGzipBuffer(gzipBuf(t, "ENSG0001,GENE1\nENSG0002,\n,GENE3\n"))
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, Feature{EnsemblID: "ENSG0001", Symbol: "GENE1"}, features[0])
	assert.Equal(t, Feature{EnsemblID: "ENSG0002", Symbol: ""}, features[1])
	assert.Equal(t, Feature{EnsemblID: "", Symbol: "GENE3"}, features[2])
}

func TestLoadFeaturesGzipBufferRejectsWrongFieldCount(t *testing.T) {
	_, err := LoadFeaturesGzipBuffer(gzipBuf(t, "ENSG0001,GENE1,extra\n"))
	assert.Error(t, err)
}

func TestLoadRankingsGzipBuffer(t *testing.T) {
	rows, err := LoadRankingsGzipBuffer(gzipBuf(t, "1,2,3\n3,1,2\n"), 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {3, 1, 2}}, rows)
}

func TestLoadRankingsGzipBufferRejectsWrongColumnCount(t *testing.T) {
	_, err := LoadRankingsGzipBuffer(gzipBuf(t, "1,2,3\n3,1\n"), 3)
	assert.Error(t, err)
}

func TestLoadRankingsGzipBufferRejectsEmptyField(t *testing.T) {
	_, err := LoadRankingsGzipBuffer(gzipBuf(t, "1,,3\n"), 3)
	assert.Error(t, err)
}

func TestLoadMarkersGzipBuffer(t *testing.T) {
	mk, err := LoadMarkersGzipBuffer(gzipBuf(t, "0\t1\t2\t4\n1\t0\t3\n"), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, mk[0][1])
	assert.Equal(t, []int{3}, mk[1][0])
}

func TestLoadMarkersGzipBufferRejectsRepeatedPair(t *testing.T) {
	_, err := LoadMarkersGzipBuffer(gzipBuf(t, "0\t1\t2\n0\t1\t3\n"), 2, 5)
	assert.Error(t, err)
}

func TestLoadMarkersGzipBufferRejectsOutOfBoundsGene(t *testing.T) {
	_, err := LoadMarkersGzipBuffer(gzipBuf(t, "0\t1\t99\n"), 2, 5)
	assert.Error(t, err)
}

func TestInternFeaturesAssignsStableIndices(t *testing.T) {
	features := []Feature{{EnsemblID: "A"}, {EnsemblID: "B"}, {EnsemblID: "A"}}
	table, ix := InternFeatures(features)
	assert.Equal(t, ix[0], ix[2])
	assert.NotEqual(t, ix[0], ix[1])
	assert.Equal(t, 2, table.Len())
}
