package singlepp

import (
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/integrated"
	"github.com/grailbio/singlepp/markers"
	"github.com/grailbio/singlepp/reference"
	"github.com/grailbio/singlepp/refmatrix"
)

// PrepareIntegratedInput pairs already single-trained references with
// the marker tables TrainSingle built them from, ready for
// TrainIntegrated.
func PrepareIntegratedInput(refs []*reference.Trained, mks []markers.Markers) ([]integrated.Input, error) {
	return integrated.PrepareInput(refs, mks)
}

// PrepareIntegratedInputIntersect is PrepareIntegratedInput for
// references trained by TrainSingleIntersect.
func PrepareIntegratedInputIntersect(refs []*reference.Trained, mks []markers.Markers) ([]integrated.Input, error) {
	return integrated.PrepareInputIntersect(refs, mks)
}

// TrainIntegrated builds the shared gene universe and per-reference
// universe-coordinate marker and profile data ClassifyIntegrated needs
// to pick the best reference per test cell.
func TrainIntegrated(inputs []integrated.Input) (*integrated.Trained, error) {
	return integrated.Train(inputs)
}

// ClassifyIntegrated picks, for every test cell, the best of several
// references given each reference's already-assigned label for that
// cell (typically each reference's own ClassifySingle/
// ClassifySingleIntersect result).
func ClassifyIntegrated(test refmatrix.Matrix, assigned [][]int, trained *integrated.Trained, opts Options) ([]integrated.Result, error) {
	return integrated.Classify(test, assigned, trained, opts.integratedOptions())
}

// ClassifyIntegratedAll runs the common two-stage pipeline end to end:
// ClassifySingle once per reference, then ClassifyIntegrated to pick
// the best reference per cell. refs and mks must be parallel to
// trained.References, in the order PrepareIntegratedInput/
// TrainIntegrated consumed them.
func ClassifyIntegratedAll(
	test refmatrix.Matrix,
	refs []*reference.Trained,
	mks []markers.Markers,
	trained *integrated.Trained,
	opts Options,
) (perReference [][]classify.Result, result []integrated.Result, err error) {
	return integrated.ClassifyAll(test, refs, mks, opts.classifyOptions(), trained, opts.integratedOptions())
}
