package art

// replaceInParentOrRoot splices newNode into old's former slot: the
// tree root pointer if old had no parent, or the grandparent's child
// table entry under old.key otherwise. Used after grow/shrink/merge,
// where a node's identity (pointer) changes but its logical position
// in the tree does not.
func (t *Tree[V]) replaceInParentOrRoot(old *node, newNode *node) {
	if old.parent == nil {
		t.root = newNode
		return
	}
	setChildPointer(old.parent, old.key, newNode, t.ordered())
}

// spliceIntoSlot installs newNode into the slot parent/key formerly
// named. Unlike replaceInParentOrRoot, it takes the slot's parent/key
// explicitly rather than reading them off the node being replaced —
// required after split, which overwrites the old node's own .parent
// and .key fields (it becomes a child of the new branch) before the
// caller gets a chance to locate its former slot.
func (t *Tree[V]) spliceIntoSlot(parent *node, key byte, newNode *node) {
	if parent == nil {
		t.root = newNode
		return
	}
	setChildPointer(parent, key, newNode, t.ordered())
}

// addChild inserts child under key byte b in parent's table, growing
// parent first if it is already at capacity (spec.md §4.1/§4.4: "grow
// the parent if size == capacity"). Returns the (possibly reallocated)
// parent, already relinked into its own parent/root.
func (t *Tree[V]) addChild(parent *node, b byte, child *node) *node {
	if int(parent.size) == parent.maxChildren() {
		grown := grow(parent)
		t.replaceInParentOrRoot(parent, grown)
		parent = grown
	}
	child.parent = parent
	child.key = b
	switch parent.shape {
	case kindN4:
		parent.asN4().insert(b, child)
	case kindN8:
		parent.asN8().insert(b, child, t.ordered())
	case kindN16:
		parent.asN16().insert(b, child, t.ordered())
	case kindN32:
		parent.asN32().insert(b, child, t.ordered())
	case kindN64:
		parent.asN64().insert(b, child)
	case kindN128:
		parent.asN128().insert(b, child)
	case kindN256:
		parent.asN256().insert(b, child)
	}
	return parent
}

func existsErr() error { return newErr(KindExists, "key already exists") }

// insert implements spec.md §4.4's Insert algorithm. overwrite selects
// between Tree.Set's overwrite-on-duplicate contract and Tree.Insert's
// strict E_EXISTS contract (SPEC_FULL.md §4.6a).
func (t *Tree[V]) insert(key Key, payload any, overwrite bool) (*leafNode, bool, error) {
	if len(key) == 0 {
		return nil, false, newErr(KindInvalidKey, "empty key")
	}
	if t.root == nil {
		leaf := newLeafNode(key, payload)
		t.root = &leaf.node
		t.leaves++
		return leaf, true, nil
	}

	reached, mk, consumed, matched := descend(t.root, key, t.ordered())
	tail := key[consumed:]

	switch mk {
	case matchAtLeaf:
		if overwrite {
			lf := reached.asLeaf()
			lf.payload = payload
			return lf, false, nil
		}
		return nil, false, existsErr()

	case matchAtInternal:
		// Key exhausted exactly at a branching node; internal nodes
		// carry no payload slot, so this collides (see DESIGN.md).
		return nil, false, existsErr()

	case matchPartial:
		if len(tail) == 0 {
			// New key is a strict prefix of an existing longer key;
			// spec.md §4.4 bullet 1 treats this as a duplicate.
			return nil, false, existsErr()
		}
		origParent, origKey := reached.parent, reached.key
		newLeaf := newLeafNode(append([]byte(nil), tail[1:]...), payload)
		res := split(reached, matched, newLeaf, tail[0])
		t.spliceIntoSlot(origParent, origKey, res.branch)
		t.leaves++
		return newLeaf, true, nil

	case matchNone:
		if reached.isLeaf() {
			// Existing key is a strict prefix of the new, longer key,
			// with no terminator byte to disambiguate (see DESIGN.md).
			return nil, false, existsErr()
		}
		newLeaf := newLeafNode(append([]byte(nil), tail[1:]...), payload)
		t.addChild(reached, tail[0], &newLeaf.node)
		t.leaves++
		return newLeaf, true, nil

	default:
		return nil, false, existsErr()
	}
}
