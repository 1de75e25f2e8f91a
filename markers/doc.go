// Package markers implements the pairwise marker-gene table (label A vs
// label B's distinguishing genes, ranked best first), the tools to
// restrict it to a minimal gene universe for training/classification
// (SubsetToMarkers, SubsetToMarkersIntersect), gene-identifier
// intersection between a reference and test dataset (IntersectGenes),
// and the classic (pairwise mean-difference)
// marker chooser (ChooseClassicMarkers).
package markers
