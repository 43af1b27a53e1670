package egraph

import "sort"

// Rebuild restores canonicality and congruence closure after a batch of
// merges. It processes a worklist of classes whose
// membership changed: for each, every parent e-node is re-canonicalized
// and re-hashconsed, and any two parents that become structurally
// identical (congruent) trigger a further merge, which in turn re-queues
// its own parents. The worklist is drained to a fixpoint, which is
// guaranteed to terminate because every merge strictly shrinks the number
// of live classes. A final pass resynchronizes every class's own node
// list from the now-authoritative hash-cons table, so invariant 1
// (children are union-find leaders) holds for Nodes as well as Parents.
func (g *Graph) Rebuild() {
	for len(g.worklist) > 0 {
		todo := g.dedupeWorklist()
		g.worklist = nil
		for _, leader := range todo {
			g.repair(leader)
		}
	}
	g.resyncNodes()
}

// resyncNodes rebuilds every live class's Nodes slice from the hash-cons
// table, which by this point is the single authoritative source of
// canonical nodes; each entry's owning class is canonicalized through
// Find, since entries not touched by repair may still name a class that
// was merged away. Nodes within a class are sorted
// by their canonical key for reproducible iteration order.
func (g *Graph) resyncNodes() {
	grouped := make(map[ClassID][]ENode, g.live)
	for _, e := range g.hashcons {
		cls := g.Find(e.class)
		grouped[cls] = append(grouped[cls], e.node)
	}
	for cls, nodes := range grouped {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].key() < nodes[j].key() })
		g.classes[cls].Nodes = nodes
	}
}

// dedupeWorklist canonicalizes and deduplicates the pending worklist,
// returning it in a deterministic (sorted) order so that congruence
// merges fire in a reproducible sequence.
func (g *Graph) dedupeWorklist() []ClassID {
	seen := make(map[ClassID]bool, len(g.worklist))
	out := make([]ClassID, 0, len(g.worklist))
	for _, c := range g.worklist {
		l := g.Find(c)
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type canonParent struct {
	node  ENode
	class ClassID
}

// repair re-canonicalizes the parent e-nodes of the class leader
// currently identifies, merging any that collide (congruence), and
// rewrites the hash-cons index and parent list to reflect the result.
func (g *Graph) repair(leader ClassID) {
	ec := g.classes[g.Find(leader)]
	oldParents := ec.Parents

	byKey := make(map[string]canonParent, len(oldParents))
	for _, p := range oldParents {
		delete(g.hashcons, p.Node.key())

		canon := p.Node.canonicalize(g)
		key := canon.key()
		pClass := g.Find(p.Class)

		if existing, ok := byKey[key]; ok {
			if existingClass := g.Find(existing.class); existingClass != pClass {
				if _, changed := g.union(existingClass, pClass); changed && g.rec != nil {
					g.rec.Record(existingClass, pClass, Justification{
						Rule:  "congruence",
						NodeA: existing.node,
						NodeB: canon,
					})
				}
			}
			continue
		}
		byKey[key] = canonParent{node: canon, class: pClass}
	}

	finalParents := make([]Parent, 0, len(byKey))
	for key, cp := range byKey {
		cls := g.Find(cp.class)
		g.hashcons[key] = hcEntry{class: cls, node: cp.node}
		finalParents = append(finalParents, Parent{Node: cp.node, Class: cls})
	}

	g.classes[g.Find(leader)].Parents = finalParents
}
