package markers

// SubsetToMarkers restricts markers to its top-N entries per pairwise
// list (top < 0 means no truncation), collects the union of surviving
// reference gene indices into a sorted subset, and rewrites markers'
// gene indices in place to refer to positions on that subset. It
// returns the subset. Use this when the reference and test gene
// universes are already identical, so no intersection is needed.
func SubsetToMarkers(m Markers, top int) []int {
	var maxGene int
	for _, row := range m {
		for _, list := range row {
			for _, g := range list {
				if g > maxGene {
					maxGene = g
				}
			}
		}
	}
	available := make([]bool, maxGene+1)

	for i, row := range m {
		for j, list := range row {
			if top >= 0 && len(list) > top {
				list = list[:top]
				row[j] = list
			}
			for _, g := range list {
				available[g] = true
			}
		}
		m[i] = row
	}

	subset := make([]int, 0)
	mapping := make([]int, len(available))
	for g, ok := range available {
		if ok {
			mapping[g] = len(subset)
			subset = append(subset, g)
		}
	}

	for _, row := range m {
		for _, list := range row {
			for k, g := range list {
				list[k] = mapping[g]
			}
		}
	}
	return subset
}

// SubsetToMarkersIntersect is SubsetToMarkers for the case where the
// reference and test gene universes differ: only markers that survive
// the Intersection can be used, and the top-N truncation is applied
// *after* filtering to the intersection, walking the pairwise list in
// its original (best-marker-first) order and keeping the first `top`
// entries that are available in the intersection — not the literal
// top-N-then-filter, which would under-fill lists whose best markers
// happen to fall outside the intersection. intersection is filtered
// and reindexed in place to the new marker subset; markers' gene
// indices are rewritten in place to the same subset.
func SubsetToMarkersIntersect(intersection *Intersection, m Markers, top int) []int {
	var maxRefIx int
	for _, p := range *intersection {
		if p.RefIx > maxRefIx {
			maxRefIx = p.RefIx
		}
	}
	available := make([]bool, maxRefIx+1)
	for _, p := range *intersection {
		available[p.RefIx] = true
	}

	allMarkers := make([]bool, maxRefIx+1)
	for i, row := range m {
		for j, list := range row {
			outputSize := len(list)
			if top >= 0 && top < outputSize {
				outputSize = top
			}
			if outputSize == 0 {
				row[j] = list[:0]
				continue
			}
			replacement := make([]int, 0, outputSize)
			for _, marker := range list {
				if marker < len(available) && available[marker] {
					allMarkers[marker] = true
					replacement = append(replacement, marker)
					if len(replacement) == outputSize {
						break
					}
				}
			}
			row[j] = replacement
		}
		m[i] = row
	}

	mapping := make([]int, maxRefIx+1)
	counter := 0
	filtered := (*intersection)[:0]
	for _, p := range *intersection {
		if allMarkers[p.RefIx] {
			mapping[p.RefIx] = counter
			filtered = append(filtered, p)
			counter++
		}
	}
	*intersection = filtered

	subset := make([]int, counter)
	for _, p := range *intersection {
		subset[mapping[p.RefIx]] = p.RefIx
	}

	for _, row := range m {
		for _, list := range row {
			for k, g := range list {
				list[k] = mapping[g]
			}
		}
	}
	return subset
}
