package rewrite

import (
	"fmt"

	"github.com/latticecell/synthmap/pkg/pattern"
)

// CompileLibraryRule builds the rewrite rule a standard-cell library entry
// contributes: whenever searcherSrc matches somewhere in the graph,
// applierSrc — expected to instantiate a Gate node — is merged with the
// match. A parse failure in either pattern is reported with the owning
// cell's name rather than panicking, since a malformed library file is
// user input, not a programming bug.
func CompileLibraryRule(cellName, searcherSrc, applierSrc string) (Rule, error) {
	p, err := pattern.Parse(searcherSrc)
	if err != nil {
		return Rule{}, fmt.Errorf("rewrite: cell %q: bad searcher: %w", cellName, err)
	}
	a, err := ParseApplier(applierSrc)
	if err != nil {
		return Rule{}, fmt.Errorf("rewrite: cell %q: bad applier: %w", cellName, err)
	}
	return Rule{Name: cellName, Search: SingleSearcher(p), Applier: a}, nil
}
