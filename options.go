package singlepp

import (
	"github.com/grailbio/singlepp/classify"
	"github.com/grailbio/singlepp/integrated"
	"github.com/grailbio/singlepp/reference"
)

// Options configures every stage of the facade: marker selection at
// training time, and scoring and fine-tuning at classification time.
// Not every field applies to every function; each function's doc
// comment says which fields it reads.
type Options struct {
	// Top bounds how many of each pairwise marker list's best genes
	// TrainSingle/TrainSingleIntersect keep before taking their union
	// into the trained gene subset. Negative means no truncation.
	Top int
	// Quantile selects how many of a label's (or, for integrated
	// classification, a reference's) nearest profiles contribute to its
	// score and how they're combined; see classify.PlanQuantile.
	Quantile float64
	// FineTune enables the iterative marker-restriction refinement pass
	// after the coarse top-K scoring pass.
	FineTune bool
	// FineTuneThreshold is the score margin below the current best that
	// still keeps a candidate in play during fine-tuning.
	FineTuneThreshold float64
	// NumThreads bounds worker count; <= 0 means full parallelism.
	NumThreads int
}

func (o Options) referenceOptions() reference.Options {
	return reference.Options{NumThreads: o.NumThreads}
}

func (o Options) classifyOptions() classify.Options {
	return classify.Options{
		Quantile:          o.Quantile,
		FineTune:          o.FineTune,
		FineTuneThreshold: o.FineTuneThreshold,
		NumThreads:        o.NumThreads,
	}
}

func (o Options) integratedOptions() integrated.Options {
	return integrated.Options{
		Quantile:          o.Quantile,
		FineTune:          o.FineTune,
		FineTuneThreshold: o.FineTuneThreshold,
		NumThreads:        o.NumThreads,
	}
}
