package art

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestTextKeyRejectsEmpty(t *testing.T) {
	if _, err := TextKey(""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("TextKey(\"\") = %v, want ErrInvalidKey", err)
	}
}

func TestBinaryKeyRejectsEmpty(t *testing.T) {
	if _, err := BinaryKey(nil); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("BinaryKey(nil) = %v, want ErrInvalidKey", err)
	}
	if _, err := BinaryKey([]byte{}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("BinaryKey([]byte{}) = %v, want ErrInvalidKey", err)
	}
}

func TestTextKeyAppendsTrailingNUL(t *testing.T) {
	k, err := TextKey("foo")
	if err != nil {
		t.Fatalf("TextKey(\"foo\") unexpected error: %v", err)
	}
	if len(k) != 4 || k[3] != 0x00 {
		t.Fatalf("TextKey(\"foo\") = %v, want [66 6F 6F 00]", k.Bytes())
	}
}

func TestTextKeyDisambiguatesPrefix(t *testing.T) {
	foo, _ := TextKey("foo")
	foobar, _ := TextKey("foobar")
	if bytes.Equal(foo.Bytes(), foobar.Bytes()[:len(foo)]) && len(foo) == len(foobar) {
		t.Fatalf("foo and foobar keys collided")
	}
	if !bytes.HasPrefix(foobar.Bytes(), foo.Bytes()[:len(foo)-1]) {
		t.Fatalf("expected foobar to extend foo's non-NUL bytes")
	}
}

func TestTextKeyNormalization(t *testing.T) {
	precomposed := "ä"
	decomposed := "ä"
	p, err := TextKey(precomposed)
	if err != nil {
		t.Fatalf("TextKey(precomposed) error: %v", err)
	}
	d, err := TextKey(decomposed)
	if err != nil {
		t.Fatalf("TextKey(decomposed) error: %v", err)
	}
	if !bytes.Equal(p.Bytes(), d.Bytes()) {
		t.Fatalf("normalization mismatch: %v vs %v", p.Bytes(), d.Bytes())
	}
}

func TestBinaryKeyCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	k, err := BinaryKey(src)
	if err != nil {
		t.Fatalf("BinaryKey error: %v", err)
	}
	src[0] = 9
	if bytes.Equal(k.Bytes(), src) {
		t.Fatalf("BinaryKey did not copy input: got %v, src now %v", k.Bytes(), src)
	}
}

func TestFromInt64OrderPreserving(t *testing.T) {
	const offset = uint64(1) << 63

	v := int64(0x0102030405060708)
	k := FromInt64(v)
	if len(k) != 8 {
		t.Fatalf("FromInt64 should produce 8 bytes, got %d", len(k))
	}
	got := int64(binary.BigEndian.Uint64(k.Bytes()) - offset)
	if got != v {
		t.Fatalf("round-trip mismatch: got=%#x want=%#x", got, v)
	}

	negative := FromInt64(-1)
	positive := FromInt64(1)
	if bytes.Compare(negative.Bytes(), positive.Bytes()) >= 0 {
		t.Fatalf("expected FromInt64(-1) < FromInt64(1) lexicographically")
	}
}

func TestKeyString(t *testing.T) {
	k, _ := BinaryKey([]byte{0x01, 0xAB, 0x00})
	if got, want := k.String(), "[01,AB,00]"; got != want {
		t.Fatalf("Key.String() = %q, want %q", got, want)
	}
}
