package rewrite

import "github.com/latticecell/synthmap/pkg/pattern"

// mustRule panics if compiling a built-in rule fails — a built-in rule
// with a parse error is a bug in this package, not a user input error.
func mustRule(name, searcherSrc, applierSrc string) Rule {
	p, err := pattern.Parse(searcherSrc)
	if err != nil {
		panic("rewrite: built-in rule " + name + " has unparseable searcher: " + err.Error())
	}
	a, err := ParseApplier(applierSrc)
	if err != nil {
		panic("rewrite: built-in rule " + name + " has unparseable applier: " + err.Error())
	}
	return Rule{Name: name, Search: SingleSearcher(p), Applier: a}
}

// mustInlineRule builds one of the inline-let-{and,or,not} rules: a
// multi-pattern anchored on the AND/OR/NOT occurrence, requiring that a
// `let` binding ?x to ?y exists somewhere in the graph, and rewriting
// the occurrence to substitute ?y for ?x.
func mustInlineRule(name, occurrenceSrc, applierSrc string) Rule {
	letPat, err := pattern.Parse("(let ?x ?y)")
	if err != nil {
		panic("rewrite: built-in rule " + name + " has unparseable let leg: " + err.Error())
	}
	occPat, err := pattern.Parse(occurrenceSrc)
	if err != nil {
		panic("rewrite: built-in rule " + name + " has unparseable occurrence leg: " + err.Error())
	}
	a, err := ParseApplier(applierSrc)
	if err != nil {
		panic("rewrite: built-in rule " + name + " has unparseable applier: " + err.Error())
	}
	mp := pattern.NewMulti(
		pattern.Anchor{Var: "binding", Pattern: letPat},
		pattern.Anchor{Var: "occurrence", Pattern: occPat},
	)
	return Rule{Name: name, Search: MultiSearcher(mp, "occurrence"), Applier: a}
}

// Builtins returns the always-present algebraic rule set: commutativity
// of AND/OR, De Morgan's laws, and let-inlining into each of the three
// Boolean operators.
func Builtins() []Rule {
	return []Rule{
		mustRule("commute-and", "(& ?x ?y)", "(& ?y ?x)"),
		mustRule("commute-or", "(| ?x ?y)", "(| ?y ?x)"),
		mustRule("demorgan-and", "(! (& ?x ?y))", "(| (! ?x) (! ?y))"),
		mustRule("demorgan-or", "(! (| ?x ?y))", "(& (! ?x) (! ?y))"),
		mustInlineRule("inline-let-and", "(& ?x ?z)", "(& ?y ?z)"),
		mustInlineRule("inline-let-or", "(| ?x ?z)", "(| ?y ?z)"),
		mustInlineRule("inline-let-not", "(! ?x)", "(! ?y)"),
	}
}
