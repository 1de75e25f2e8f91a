package singlepp

import "github.com/grailbio/singlepp/markers"

// ChooseClassicMarkers picks pairwise markers by the classic SingleR
// method over one or more representative profile sets — typically the
// per-label median expression of each reference to train. number < 0
// auto-selects the per-comparison count via
// markers.NumberOfClassicMarkers.
func ChooseClassicMarkers(reps []markers.RepresentativeSet, number int, opts Options) (markers.Markers, error) {
	return markers.ChooseClassicMarkers(reps, markers.ChooseClassicMarkersOptions{
		Number:     number,
		NumThreads: opts.NumThreads,
	})
}
