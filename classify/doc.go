// Package classify scores test-matrix columns against a single
// trained reference: a KMKNN top-K search per label converted to a
// quantile-aggregated correlation score, an argmax-with-delta pick,
// and an optional fine-tuning loop that progressively restricts the
// marker set to the genes distinguishing the remaining candidate
// labels.
package classify
