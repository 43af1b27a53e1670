package langterm

import "github.com/latticecell/synthmap/internal/ids"

// NodeID addresses a node within a single Expr. Ids are dense in [0, N)
// and only meaningful relative to the Expr that allocated them; copying a
// subtree into a fresh Expr (CopySubtree) renumbers it from 0.
type NodeID = ids.ID

// Node is one entry of an expression DAG. At most one of Num/Name is
// meaningful, depending on Kind:
//
//	Module  Children = statements, in order
//	Let     Children = [name, body]
//	And/Or  Children = [a, b]
//	Not     Children = [a]
//	Num     Num holds the literal value
//	Symbol  Name holds the interned string
//	Gate    Name holds the cell name (a literal string, not a child
//	        reference — mirrors the Rust original's Gate(Symbol, Vec<Id>)
//	        where Symbol is carried directly in the enum variant);
//	        Children = pins
//	Input   Children = [port, driver]; port references a Symbol node,
//	        same shape as Let's name child
//	Output  Children = [port]; port references a Symbol node
//	Var     Name holds the pattern-variable name (without leading '?')
type Node struct {
	Kind     Kind
	Children []NodeID
	Num      int32
	Name     string
}
