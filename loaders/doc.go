// Package loaders reads the plain-text input formats the core package
// consumes (label assignments, label names, gene features, rank
// matrices, marker tables), each in plain, gzip'd-file, and in-memory
// gzip'd-buffer variants.
package loaders
