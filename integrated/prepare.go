package integrated

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
)

// Input is one reference's raw contribution to Train: an
// already-trained single reference plus the pairwise marker table it
// was built from (the same table passed to classify.Single for that
// reference). Train consumes a slice of these to build the shared gene
// universe and each reference's universe-coordinate marker/profile
// data.
type Input struct {
	Trained *reference.Trained
	Markers markers.Markers
}

// PrepareInput pairs already single-trained references with the
// marker tables they were built from, ready for Train. refs and mks
// must be parallel: refs[i] was trained using mks[i].
func PrepareInput(refs []*reference.Trained, mks []markers.Markers) ([]Input, error) {
	if len(refs) != len(mks) {
		return nil, errors.E(errors.Invalid, "integrated.PrepareInput: refs and mks must be parallel slices")
	}
	if len(refs) == 0 {
		return nil, errors.E(errors.Invalid, "integrated.PrepareInput: at least one reference is required")
	}
	out := make([]Input, len(refs))
	for i := range refs {
		out[i] = Input{Trained: refs[i], Markers: mks[i]}
	}
	return out, nil
}

// PrepareInputIntersect is PrepareInput for references trained via
// reference.TrainIntersect. Shape is identical to PrepareInput:
// TrainIntersect already recorded each reference's test-gene mapping
// in Trained.TestSubset, which Train reads directly, so no further
// intersection step is needed here.
func PrepareInputIntersect(refs []*reference.Trained, mks []markers.Markers) ([]Input, error) {
	return PrepareInput(refs, mks)
}
