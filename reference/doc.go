// Package reference trains a KMKNN (k-means/k-nearest-neighbor hybrid)
// index per label from a reference expression matrix: extracting each
// sample's scaled-rank profile over a marker gene subset, then building
// a per-label index that supports fast exact k nearest
// neighbor search under L2 in scaled-rank space.
package reference
