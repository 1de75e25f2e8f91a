// Package refmatrix provides the gene-by-sample matrix abstraction that
// training and classification extract scaled-rank profiles from: a
// Matrix interface with Dense and Sparse (CSC) implementations, and an
// Extractor that applies a subset.Sanitizer to pull a single column
// restricted to a gene subset.
package refmatrix
