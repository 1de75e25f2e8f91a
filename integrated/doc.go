// Package integrated scores a test cell against multiple trained
// references at once, given a per-reference label already assigned to
// that cell (typically by classify.Single run once per reference): a
// shared gene universe across references, a per-cell marker
// "miniverse" restricted to the assigned labels, quantile-aggregated
// correlation per reference, and an optional fine-tuning loop that
// progressively restricts the miniverse to the references still in
// contention.
package integrated
