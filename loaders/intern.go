package loaders

import "github.com/grailbio/singlepp/internal/intern"

// GeneIx is a dense, stable gene index assigned by InternFeatures in
// first-seen order.
type GeneIx = int

// InternFeatures interns every feature's Ensembl identifier into a
// dense GeneIx table, returning the table and the per-feature index
// parallel to features. Two feature lists interned through separate
// calls are not comparable; callers matching a test and a reference
// gene universe should intern both through one shared *intern.Table
// and call its Intern method directly instead.
func InternFeatures(features []Feature) (*intern.Table, []GeneIx) {
	t := intern.New()
	ix := make([]GeneIx, len(features))
	for i, f := range features {
		ix[i] = t.Intern(f.EnsemblID)
	}
	return t, ix
}
