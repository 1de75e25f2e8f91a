// Package subset implements the index-array bookkeeping shared by
// training and classification: sanitizing an arbitrary (possibly
// unsorted) gene subset into something a matrix extractor can use while
// preserving the caller's original ordering (Sanitizer), and remapping
// a ranked vector's indices onto a smaller subset of interest
// (Remapper).
package subset
