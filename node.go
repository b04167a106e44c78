package art

import "unsafe"

// kind identifies one of the eight physical node shapes of spec.md §3.
// Every concrete shape struct embeds node as its first field so a
// *node can be reinterpreted as the concrete shape via unsafe.Pointer,
// the same tagged-union-by-embedding idiom the teacher repo uses
// throughout its art/ package (see node_types.go/common_node_functions.go).
type kind uint8

const (
	kindLeaf kind = iota
	kindN4
	kindN8
	kindN16
	kindN32
	kindN64
	kindN128
	kindN256
)

func (k kind) String() string {
	switch k {
	case kindLeaf:
		return "Leaf"
	case kindN4:
		return "N4"
	case kindN8:
		return "N8"
	case kindN16:
		return "N16"
	case kindN32:
		return "N32"
	case kindN64:
		return "N64"
	case kindN128:
		return "N128"
	case kindN256:
		return "N256"
	default:
		return "unknown"
	}
}

// inlinePathCap is sizeof(pointer) on the only architectures Go
// targets meaningfully for this container (8 bytes on amd64/arm64).
// The teacher packs an inline prefix length into the low nibble of a
// single `meta` byte, capping inline prefixes at 15 bytes; we need
// paths longer than 15 bytes to route to heap storage too, so pathLen
// is its own field rather than a packed nibble (see SPEC_FULL.md §3).
const inlinePathCap = 8

// node is the common header every shape embeds first. It carries the
// compressed path leading into this node (§4.2), the single byte this
// node is indexed by in its parent (meaningless for the root), the
// child count, and the upward back-link that lets split/grow/shrink/
// merge relink in place without re-descending from the root.
type node struct {
	shape      kind
	size       uint16
	key        byte
	pathLen    uint32
	pathInline [inlinePathCap]byte
	pathHeap   []byte // non-nil only when pathLen > inlinePathCap
	parent     *node
}

// path returns the compressed path bytes on the edge into n, branching
// on whether the path is stored inline or on the heap, exactly the
// accessor spec.md §9 asks for: "expose the path behind a
// path_bytes(&node) accessor that branches on path_len <= sizeof(ptr)".
func (n *node) path() []byte {
	if n.pathLen <= inlinePathCap {
		return n.pathInline[:n.pathLen]
	}
	return n.pathHeap
}

// setPath replaces n's path wholesale, choosing inline or heap storage
// by length and clearing whichever representation is no longer in use.
func (n *node) setPath(p []byte) {
	n.pathLen = uint32(len(p))
	if len(p) <= inlinePathCap {
		copy(n.pathInline[:], p)
		n.pathHeap = nil
		return
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	n.pathHeap = buf
}

func (n *node) isLeaf() bool { return n.shape == kindLeaf }

// asLeaf reinterprets n as its concrete leaf shape. Callers must only
// invoke this when n.shape == kindLeaf.
func (n *node) asLeaf() *leafNode {
	return (*leafNode)(unsafe.Pointer(n))
}

func (n *node) asN4() *node4     { return (*node4)(unsafe.Pointer(n)) }
func (n *node) asN8() *node8     { return (*node8)(unsafe.Pointer(n)) }
func (n *node) asN16() *node16   { return (*node16)(unsafe.Pointer(n)) }
func (n *node) asN32() *node32   { return (*node32)(unsafe.Pointer(n)) }
func (n *node) asN64() *node64   { return (*node64)(unsafe.Pointer(n)) }
func (n *node) asN128() *node128 { return (*node128)(unsafe.Pointer(n)) }
func (n *node) asN256() *node256 { return (*node256)(unsafe.Pointer(n)) }

// nodeBaseSize returns the in-memory footprint of n's concrete shape
// struct plus any heap-allocated path buffer, for memsize (spec.md
// §4.6).
func nodeBaseSize(n *node) uint64 {
	var base uint64
	switch n.shape {
	case kindLeaf:
		base = uint64(unsafe.Sizeof(leafNode{}))
	case kindN4:
		base = uint64(unsafe.Sizeof(node4{}))
	case kindN8:
		base = uint64(unsafe.Sizeof(node8{}))
	case kindN16:
		base = uint64(unsafe.Sizeof(node16{}))
	case kindN32:
		base = uint64(unsafe.Sizeof(node32{}))
	case kindN64:
		base = uint64(unsafe.Sizeof(node64{}))
	case kindN128:
		base = uint64(unsafe.Sizeof(node128{}))
	case kindN256:
		base = uint64(unsafe.Sizeof(node256{}))
	}
	if n.pathLen > inlinePathCap {
		base += uint64(len(n.pathHeap))
	}
	return base
}

// maxChildren returns the shape's fixed capacity (spec.md §3's
// capacity schedule); 0 for leaves, which have no child table.
func (n *node) maxChildren() int {
	switch n.shape {
	case kindN4:
		return 4
	case kindN8:
		return 8
	case kindN16:
		return 16
	case kindN32:
		return 32
	case kindN64:
		return 64
	case kindN128:
		return 128
	case kindN256:
		return 256
	default:
		return 0
	}
}
