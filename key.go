// Package art implements an Adaptive Radix Tree: an in-memory, ordered
// associative container mapping arbitrary byte-string keys to opaque
// payloads, using node polymorphism (eight physical node shapes) and
// path compression to keep both memory footprint and lookup latency
// low across wildly varying fan-out.
package art

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key is the byte-string representation the tree stores and compares.
// Keys are always constructed via TextKey or BinaryKey so the implicit
// trailing NUL of text keys is applied consistently exactly once, at
// the boundary, as spec.md §6 requires ("The core converts an incoming
// key to its effective byte sequence exactly once at entry").
type Key []byte

// TextKey normalizes s to Unicode NFC and returns a Key carrying the
// implicit trailing zero byte that lets "foo" and "foobar" coexist
// without one prefix-colliding into the other during lookup. This is
// the "convert an incoming key to its effective byte sequence exactly
// once at entry" boundary of spec.md §6: validity (a non-empty
// original string) is checked here, before the NUL is appended, since
// a length-1 Key holding a single zero byte is otherwise
// indistinguishable from "empty text key, NUL appended".
func TextKey(s string) (Key, error) {
	s = norm.NFC.String(s)
	if len(s) == 0 {
		return nil, newErr(KindInvalidKey, "empty text key")
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	// b[len(s)] is already the zero byte from make.
	return Key(b), nil
}

// BinaryKey copies b into a Key verbatim, with no implicit trailing
// byte. An empty b is rejected here, at the same entry boundary
// TextKey validates at.
func BinaryKey(b []byte) (Key, error) {
	if len(b) == 0 {
		return nil, newErr(KindInvalidKey, "empty binary key")
	}
	kb := make([]byte, len(b))
	copy(kb, b)
	return Key(kb), nil
}

const int64KeyOffset = uint64(1) << 63

// FromInt64 returns a binary Key encoding i as 8 big-endian bytes,
// shifted by 1<<63 so lexicographic Key order matches numeric order.
func FromInt64(i int64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i)+int64KeyOffset)
	k, _ := BinaryKey(b[:]) // 8 bytes is never empty
	return k
}

// FromUint64 returns a binary Key encoding u as 8 big-endian bytes,
// shifted by 1<<63 so it compares consistently against FromInt64 keys
// carrying the same numeric value.
func FromUint64(u uint64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u+int64KeyOffset)
	k, _ := BinaryKey(b[:]) // 8 bytes is never empty
	return k
}

// Bytes returns a defensive copy of k's raw bytes, including the
// implicit trailing NUL for text keys.
func (k Key) Bytes() []byte {
	if k == nil {
		return nil
	}
	b := make([]byte, len(k))
	copy(b, k)
	return b
}

// String renders k as uppercase hex byte tuples, e.g. "[01,AB,00]",
// for debugging and test failure messages.
func (k Key) String() string {
	if len(k) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	const hex = "0123456789ABCDEF"
	for i, b := range k {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0F])
	}
	sb.WriteByte(']')
	return sb.String()
}

// commonPrefixLen returns the number of equal leading bytes of a and b,
// bounded by min(len(a), len(b)) per spec.md §4.2.
func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
