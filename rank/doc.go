// Package rank implements the scaled-rank kernel: turning a value vector
// over a gene subset into a mean-centered, L2-normalized tied-rank
// vector, and computing L2 distance and Spearman correlation between
// such vectors in dense and sparse form.
package rank
