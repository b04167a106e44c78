package art

// completeExtension implements the descent half of spec.md §4.6's
// complete: starting at n with residual (n's own unmatched path
// bytes), it walks through any chain of one-child nodes — the
// failed-merge tolerance spec.md §9 calls out — appending each child's
// key byte and path, stopping at the first branching node or leaf.
func completeExtension(n *node, residual []byte) []byte {
	out := append([]byte(nil), residual...)
	cur := n
	for !cur.isLeaf() && cur.size == 1 {
		child := soleChild(cur)
		out = append(out, child.key)
		out = append(out, child.path()...)
		cur = child
	}
	return out
}

// complete implements spec.md §4.6's longest-common-extension
// operator. A nil or empty prefix is accepted as "no prefix
// restriction" (SPEC_FULL.md §4.6b / spec.md §9's open question):
// descend with an empty cursor immediately reports the root's own
// unmatched path as residual, so no special-casing is needed here.
func (t *Tree[V]) complete(prefix []byte) ([]byte, error) {
	if t.root == nil {
		return nil, newErr(KindEmpty, "complete on empty tree")
	}
	reached, mk, consumed, matched := descend(t.root, prefix, t.ordered())
	tail := prefix[consumed:]
	found := mk == matchAtLeaf || mk == matchAtInternal || (mk == matchPartial && len(tail) == 0)
	if !found {
		return nil, newErr(KindNotFound, "prefix not found")
	}
	residual := reached.path()[matched:]
	return completeExtension(reached, residual), nil
}
