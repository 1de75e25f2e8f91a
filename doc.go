// Package singlepp implements single-cell label transfer by nearest
// reference-profile correlation, in the style of SingleR: train one or
// more labelled reference panels, then classify unlabelled test cells
// against them by scaled-rank correlation with optional fine-tuning.
//
// The package is a thin facade over reference (C4, training),
// classify (C5, single-reference classification), integrated (C6+C8,
// multi-reference classification) and markers (C3+C7, marker
// selection). The file-format readers in loaders (§6.3) are not wrapped
// here and are used directly. Most programs only need this package and
// loaders; the other subpackages are exported for callers who want
// finer control over one stage of the pipeline.
package singlepp
