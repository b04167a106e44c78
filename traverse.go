package art

// walkOrder selects where an internal node itself is visited relative
// to its children, per spec.md §4.5. Leaves are always visited
// regardless of order.
type walkOrder uint8

const (
	orderLeafOnly walkOrder = iota
	orderPre
	orderIn
	orderPost
)

// nodeVisitor is the traversal engine's callback shape. n.isLeaf() ==
// false marks an internal-node visit (pre/in/post order only); key is
// nil unless key reconstruction was requested. The return value is the
// cancellation protocol of spec.md §4.5: zero continues, a positive
// value stops the whole walk reporting success, a negative value stops
// it reporting a callback error.
type nodeVisitor func(key []byte, n *node) int

// childrenInOrder returns n's children in ascending key-byte order,
// reversed for descending traversal. N8/N16/N32 are returned in
// physical storage order: sorted under Ordered mode, append order
// (not necessarily ascending) under Unordered mode.
func childrenInOrder(n *node, reverse bool) []*node {
	var out []*node
	switch n.shape {
	case kindN4:
		nn := n.asN4()
		out = append(out, nn.children[:nn.size]...)
	case kindN8:
		nn := n.asN8()
		out = append(out, nn.children[:nn.size]...)
	case kindN16:
		nn := n.asN16()
		out = append(out, nn.children[:nn.size]...)
	case kindN32:
		nn := n.asN32()
		out = append(out, nn.children[:nn.size]...)
	case kindN64:
		nn := n.asN64()
		for b := 0; b < 256; b++ {
			if s := nn.index[b]; s != emptySlot {
				out = append(out, nn.children[s])
			}
		}
	case kindN128:
		nn := n.asN128()
		for b := 0; b < 256; b++ {
			if s := nn.index[b]; s != emptySlot {
				out = append(out, nn.children[s])
			}
		}
	case kindN256:
		nn := n.asN256()
		for b := 0; b < 256; b++ {
			if c := nn.children[b]; c != nil {
				out = append(out, c)
			}
		}
	}
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// walkNode is the traversal engine proper: it maintains the
// reconstructed-key buffer across descent/ascent (spec.md §4.5 "the
// engine maintains a mutable byte buffer... on descent it appends
// parent_key_byte || node.path; on ascent it truncates back") and
// dispatches visits according to order.
func (t *Tree[V]) walkNode(n *node, order walkOrder, reverse, wantKey bool, buf *[]byte, visit nodeVisitor) int {
	mark := len(*buf)
	if n.parent != nil {
		*buf = append(*buf, n.key)
	}
	*buf = append(*buf, n.path()...)
	defer func() { *buf = (*buf)[:mark] }()

	if n.isLeaf() {
		var key []byte
		if wantKey {
			key = *buf
		}
		return visit(key, n)
	}

	selfVisit := func() int {
		var key []byte
		if wantKey {
			key = *buf
		}
		return visit(key, n)
	}
	kids := childrenInOrder(n, reverse)

	switch order {
	case orderPre:
		if r := selfVisit(); r != 0 {
			return r
		}
		for _, c := range kids {
			if r := t.walkNode(c, order, reverse, wantKey, buf, visit); r != 0 {
				return r
			}
		}
		return 0
	case orderPost:
		for _, c := range kids {
			if r := t.walkNode(c, order, reverse, wantKey, buf, visit); r != 0 {
				return r
			}
		}
		return selfVisit()
	case orderIn:
		for i, c := range kids {
			if r := t.walkNode(c, order, reverse, wantKey, buf, visit); r != 0 {
				return r
			}
			if i == 0 {
				if r := selfVisit(); r != 0 {
					return r
				}
			}
		}
		return 0
	default: // orderLeafOnly
		for _, c := range kids {
			if r := t.walkNode(c, order, reverse, wantKey, buf, visit); r != 0 {
				return r
			}
		}
		return 0
	}
}

func interpretWalkCode(code int) error {
	if code < 0 {
		return callbackErr(code)
	}
	return nil
}

// fullWalk visits every leaf in the tree in ascending or descending
// key order.
func (t *Tree[V]) fullWalk(reverse, wantKey bool, visit nodeVisitor) error {
	if t.root == nil {
		return nil
	}
	var buf []byte
	return interpretWalkCode(t.walkNode(t.root, orderLeafOnly, reverse, wantKey, &buf, visit))
}

// scopedWalk visits every leaf whose key starts with prefix, in
// ascending or descending order, per spec.md §4.5/§4.6's "restrict to
// a prefix" flag. It reuses the lookup engine to locate the subtree
// addressable by prefix exactly the way remove_prefix and complete do.
func (t *Tree[V]) scopedWalk(prefix []byte, reverse, wantKey bool, visit nodeVisitor) error {
	if t.root == nil {
		return newErr(KindNotFound, "prefix not found in empty tree")
	}
	reached, mk, consumed, matched := descend(t.root, prefix, t.ordered())
	tail := prefix[consumed:]
	found := mk == matchAtLeaf || mk == matchAtInternal || (mk == matchPartial && len(tail) == 0)
	if !found {
		return newErr(KindNotFound, "prefix not found")
	}

	if reached.isLeaf() {
		var key []byte
		if wantKey {
			key = append([]byte(nil), prefix...)
			key = append(key, reached.path()[matched:]...)
		}
		return interpretWalkCode(visit(key, reached))
	}

	buf := append([]byte(nil), prefix...)
	buf = append(buf, reached.path()[matched:]...)
	for _, c := range childrenInOrder(reached, reverse) {
		if code := t.walkNode(c, orderLeafOnly, reverse, wantKey, &buf, visit); code != 0 {
			return interpretWalkCode(code)
		}
	}
	return nil
}

// memSize implements spec.md §4.6's memsize: per-node base struct
// size, plus out-of-line path bytes, plus an optional per-payload size
// supplied by the caller. Uses the generic engine in pre-order so
// every node (not just leaves) is visited once.
func (t *Tree[V]) memSize(payloadSize func(any) uint64) uint64 {
	if t.root == nil {
		return 0
	}
	var total uint64
	visit := func(_ []byte, n *node) int {
		total += nodeBaseSize(n)
		if n.isLeaf() && payloadSize != nil {
			total += payloadSize(n.asLeaf().payload)
		}
		return 0
	}
	var buf []byte
	t.walkNode(t.root, orderPre, false, false, &buf, visit)
	return total
}
