package integrated

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
)

// ClassifyAll is the common two-stage pipeline: run classify.Single
// once per reference to assign each test cell a label within that
// reference, then Classify to pick the best reference per cell. refs
// and mks must be parallel to trained.References, in the same order
// Train consumed them.
func ClassifyAll(
	test refmatrix.Matrix,
	refs []*reference.Trained,
	mks []markers.Markers,
	singleOpts classify.Options,
	trained *Trained,
	opts Options,
) (perReference [][]classify.Result, integrated []Result, err error) {
	if len(refs) != len(trained.References) || len(mks) != len(refs) {
		return nil, nil, errors.E(errors.Invalid, "integrated.ClassifyAll: refs/mks must match trained.References one-to-one")
	}

	perReference = make([][]classify.Result, len(refs))
	assigned := make([][]int, len(refs))
	for r := range refs {
		results, err := classify.Single(test, refs[r], mks[r], singleOpts)
		if err != nil {
			return nil, nil, errors.E(err, "integrated.ClassifyAll: reference ", r, " classification failed")
		}
		perReference[r] = results
		labels := make([]int, len(results))
		for c, res := range results {
			labels[c] = res.Best
		}
		assigned[r] = labels
	}

	integrated, err = Classify(test, assigned, trained, opts)
	if err != nil {
		return nil, nil, err
	}
	return perReference, integrated, nil
}
