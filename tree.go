package art

import (
	set3 "github.com/TomTonic/Set3"
)

// Mode selects the sort behavior of N8/N16/N32 child tables (spec.md
// §3): Ordered keeps them sorted (cheaper SIMD/binary-search lookup,
// pricier mutation); Unordered appends on insert and swaps-with-last
// on remove (cheaper mutation, storage-order traversal within those
// shapes only — N4, N64, N128, N256 are always byte-ordered).
type Mode uint8

const (
	Unordered Mode = iota
	Ordered
)

// Tree is an Adaptive Radix Tree mapping byte-string keys to payloads
// of type V. The zero value is not usable; construct with New.
//
// Tree is not safe for concurrent use. Spec.md §5 explicitly excludes
// concurrency from this container's scope: callers needing concurrent
// access must synchronize externally, the same contract the teacher
// documents on its own mutex-wrapped MultiMap (this type carries no
// mutex of its own — see DESIGN.md).
type Tree[V any] struct {
	root   *node
	leaves uint64
	mode   Mode
}

// New returns an empty Tree in the given Mode.
func New[V any](mode Mode) *Tree[V] {
	return &Tree[V]{mode: mode}
}

func (t *Tree[V]) ordered() bool { return t.mode == Ordered }

// Size returns the number of stored keys, O(1) from the leaf counter.
func (t *Tree[V]) Size() int { return int(t.leaves) }

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[V]) IsEmpty() bool { return t.leaves == 0 }

// Get looks up key and returns its leaf handle, or ErrNotFound.
func (t *Tree[V]) Get(key Key) (*Leaf[V], error) {
	if len(key) == 0 {
		return nil, newErr(KindInvalidKey, "empty key")
	}
	if t.root == nil {
		return nil, newErr(KindNotFound, "key not found")
	}
	reached, mk, _, _ := descend(t.root, key, t.ordered())
	if mk != matchAtLeaf {
		return nil, newErr(KindNotFound, "key not found")
	}
	return wrapLeaf[V](reached.asLeaf()), nil
}

// Set inserts key with payload, overwriting any existing entry in
// place (SPEC_FULL.md §4.6a's resolution of the set-vs-insert open
// question).
func (t *Tree[V]) Set(key Key, payload V) (*Leaf[V], error) {
	lf, _, err := t.insert(key, payload, true)
	if err != nil {
		return nil, err
	}
	return wrapLeaf[V](lf), nil
}

// Insert adds key with payload, failing with ErrExists on duplicate.
func (t *Tree[V]) Insert(key Key, payload V) (*Leaf[V], error) {
	lf, _, err := t.insert(key, payload, false)
	if err != nil {
		return nil, err
	}
	return wrapLeaf[V](lf), nil
}

// Remove deletes the entry leaf names, invoking dtor (if non-nil) on
// its payload.
func (t *Tree[V]) Remove(leaf *Leaf[V], dtor func(V)) {
	var wrapped func(any)
	if dtor != nil {
		wrapped = func(p any) { dtor(p.(V)) }
	}
	t.removeLeaf(leaf.n, wrapped)
}

// RemovePrefix deletes every key starting with prefix, invoking dtor
// (if non-nil) on each removed payload, and returns the count removed.
func (t *Tree[V]) RemovePrefix(prefix Key, dtor func(V)) (int, error) {
	var wrapped func(any)
	if dtor != nil {
		wrapped = func(p any) { dtor(p.(V)) }
	}
	n, err := t.removePrefix(prefix, wrapped)
	return int(n), err
}

// Clear removes every entry, invoking dtor (if non-nil) on each.
func (t *Tree[V]) Clear(dtor func(V)) {
	var wrapped func(any)
	if dtor != nil {
		wrapped = func(p any) { dtor(p.(V)) }
	}
	t.removePrefix(nil, wrapped)
}

// Complete returns the longest byte sequence that every key beneath
// prefix shares in addition to prefix itself (spec.md §4.6). A nil
// prefix means no restriction (SPEC_FULL.md §4.6b).
func (t *Tree[V]) Complete(prefix Key) ([]byte, error) {
	return t.complete(prefix)
}

// First returns the leaf holding the lexicographically smallest key.
func (t *Tree[V]) First() (*Leaf[V], error) { return t.firstOrLast(false) }

// Last returns the leaf holding the lexicographically largest key.
func (t *Tree[V]) Last() (*Leaf[V], error) { return t.firstOrLast(true) }

func (t *Tree[V]) firstOrLast(reverse bool) (*Leaf[V], error) {
	if t.root == nil {
		return nil, newErr(KindEmpty, "tree is empty")
	}
	var found *leafNode
	visit := func(_ []byte, n *node) int {
		found = n.asLeaf()
		return 1
	}
	if err := t.fullWalk(reverse, false, visit); err != nil {
		return nil, err
	}
	return wrapLeaf[V](found), nil
}

// Depth returns the maximum number of edges on any root-to-leaf path;
// 0 for an empty or single-leaf tree.
func (t *Tree[V]) Depth() int {
	if t.root == nil {
		return 0
	}
	return nodeDepth(t.root)
}

func nodeDepth(n *node) int {
	if n.isLeaf() {
		return 0
	}
	max := 0
	forEachChild(n, func(c *node) {
		if d := 1 + nodeDepth(c); d > max {
			max = d
		}
	})
	return max
}

// MemSize estimates the tree's total heap footprint: per-node struct
// size plus out-of-line path buffers, plus payloadSize(payload) at
// every leaf when payloadSize is non-nil.
func (t *Tree[V]) MemSize(payloadSize func(V) uint64) uint64 {
	var wrapped func(any) uint64
	if payloadSize != nil {
		wrapped = func(p any) uint64 { return payloadSize(p.(V)) }
	}
	return t.memSize(wrapped)
}

// SnapshotKeys returns every currently-stored key as a Set3, letting
// callers perform set algebra over the tree's keyspace without holding
// the tree itself. Pure convenience projection over Fold with
// WithKey; does not
// change the tree's storage.
func (t *Tree[V]) SnapshotKeys() *set3.Set3[string] {
	out := set3.Empty[string]()
	t.Fold(func(key Key, _ V) int {
		out.Add(string(key))
		return 0
	}, WithKey())
	return out
}

// scanOptions gathers the R/K/P flags of spec.md §4.6's
// find[_r][_k][_p]... matrix into Go's idiomatic functional-option
// form, rather than the eight combinatorial method names the C source
// generates by macro (see DESIGN.md).
type scanOptions struct {
	reverse   bool
	wantKey   bool
	prefix    Key
	hasPrefix bool
}

// ScanOption configures a Find or Fold call.
type ScanOption func(*scanOptions)

// Reverse visits keys in descending order.
func Reverse() ScanOption { return func(o *scanOptions) { o.reverse = true } }

// WithKey reconstructs and supplies each visited leaf's full key.
// Omitting it leaves the predicate/visitor's key argument nil, which
// is cheaper when the key is not needed.
func WithKey() ScanOption { return func(o *scanOptions) { o.wantKey = true } }

// WithPrefix restricts the scan to keys starting with prefix.
func WithPrefix(prefix Key) ScanOption {
	return func(o *scanOptions) {
		o.prefix = prefix
		o.hasPrefix = true
	}
}

func resolveScanOptions(opts []ScanOption) scanOptions {
	var o scanOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Find returns the first leaf (in the chosen order/scope) for which
// pred returns true, or ErrNotFound.
func (t *Tree[V]) Find(pred func(key Key, payload V) bool, opts ...ScanOption) (*Leaf[V], error) {
	o := resolveScanOptions(opts)
	var result *leafNode
	visit := func(key []byte, n *node) int {
		if !n.isLeaf() {
			return 0
		}
		var k Key
		if key != nil {
			k = Key(key)
		}
		if pred(k, n.asLeaf().payload.(V)) {
			result = n.asLeaf()
			return 1
		}
		return 0
	}
	var err error
	if o.hasPrefix {
		err = t.scopedWalk(o.prefix, o.reverse, o.wantKey, visit)
	} else {
		err = t.fullWalk(o.reverse, o.wantKey, visit)
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, newErr(KindNotFound, "no leaf matched predicate")
	}
	return wrapLeaf[V](result), nil
}

// Fold visits every leaf in scope, in the chosen order, invoking visit
// on each. visit's return follows spec.md §4.5's cancellation
// protocol: 0 continues, positive stops reporting success, negative
// stops reporting ErrCallback.
func (t *Tree[V]) Fold(visit func(key Key, payload V) int, opts ...ScanOption) error {
	o := resolveScanOptions(opts)
	wrap := func(key []byte, n *node) int {
		if !n.isLeaf() {
			return 0
		}
		var k Key
		if key != nil {
			k = Key(key)
		}
		return visit(k, n.asLeaf().payload.(V))
	}
	if o.hasPrefix {
		return t.scopedWalk(o.prefix, o.reverse, o.wantKey, wrap)
	}
	return t.fullWalk(o.reverse, o.wantKey, wrap)
}
