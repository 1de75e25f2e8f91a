package singlepp

import (
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
)

// TrainSingle trains a single reference for later classification by
// ClassifySingle. mk is truncated to opts.Top markers per pairwise
// comparison and rewritten in place to the trained gene subset's
// coordinates, exactly as ClassifySingle expects to receive it: pass
// the same mk (now mutated) to every later ClassifySingle call against
// the returned reference, not a separate copy.
func TrainSingle(m refmatrix.Matrix, labels []int, mk markers.Markers, opts Options) (*reference.Trained, error) {
	geneSubset := markers.SubsetToMarkers(mk, opts.Top)
	return reference.Train(m, labels, geneSubset, opts.referenceOptions())
}

// TrainSingleIntersect is TrainSingle for a reference whose gene
// universe doesn't match the test dataset's: testIDs and refIDs are
// parallel to the eventual test matrix's and m's gene axes
// respectively, identified by a shared namespace (e.g. Ensembl IDs).
// mk is mutated the same way TrainSingle mutates it, and must be
// passed on to ClassifySingleIntersect unchanged.
func TrainSingleIntersect(m refmatrix.Matrix, labels []int, mk markers.Markers, testIDs, refIDs []string, opts Options) (*reference.Trained, error) {
	intersection := markers.IntersectGenes(testIDs, refIDs)
	markers.SubsetToMarkersIntersect(&intersection, mk, opts.Top)
	testIx, _ := intersection.Unzip()
	return reference.TrainIntersect(
		m, labels, testIx,
		func(i int) string { return testIDs[i] },
		func(i int) string { return refIDs[i] },
		opts.referenceOptions(),
	)
}

// ClassifySingle classifies test against trained, using the same
// (post-training, rewritten) mk that built it.
func ClassifySingle(test refmatrix.Matrix, trained *reference.Trained, mk markers.Markers, opts Options) ([]classify.Result, error) {
	return classify.Single(test, trained, mk, opts.classifyOptions())
}

// ClassifySingleIntersect classifies test against a reference trained
// by TrainSingleIntersect.
func ClassifySingleIntersect(test refmatrix.Matrix, trained *reference.Trained, mk markers.Markers, opts Options) ([]classify.Result, error) {
	return classify.SingleIntersect(test, trained, mk, opts.classifyOptions())
}
