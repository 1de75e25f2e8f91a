package markers

// Markers is the pairwise marker table: Markers[a][b] lists the genes
// (reference gene indices) that distinguish label a from label b, best
// marker first. Markers[a][a] is conventionally empty.
type Markers [][][]int

// NumLabels reports how many labels this table covers.
func (m Markers) NumLabels() int {
	return len(m)
}

// Pair is one matched (test gene index, reference gene index) entry of
// an Intersection.
type Pair struct {
	TestIx int
	RefIx  int
}

// Intersection is the set of genes shared between a test and a
// reference dataset, matched by identifier.
type Intersection []Pair

// IntersectGenes matches testIDs against refIDs by identifier,
// keeping only the first occurrence of any repeated identifier on
// either side. The result is ordered by test index, matching the
// reference implementation's iteration order.
func IntersectGenes(testIDs, refIDs []string) Intersection {
	refFound := make(map[string]int, len(refIDs))
	for i, id := range refIDs {
		if _, ok := refFound[id]; !ok {
			refFound[id] = i
		}
	}

	out := make(Intersection, 0, len(testIDs))
	for i, id := range testIDs {
		refIx, ok := refFound[id]
		if !ok {
			continue
		}
		out = append(out, Pair{TestIx: i, RefIx: refIx})
		delete(refFound, id) // first occurrence in testIDs only
	}
	return out
}

// Unzip splits an Intersection into parallel test-index and
// reference-index slices, useful for driving two separate matrix
// extractions.
func (in Intersection) Unzip() (testIx, refIx []int) {
	testIx = make([]int, len(in))
	refIx = make([]int, len(in))
	for i, p := range in {
		testIx[i] = p.TestIx
		refIx[i] = p.RefIx
	}
	return
}
