package art

import "fmt"

// Kind identifies a member of the closed error taxonomy of spec.md §7.
// The core never returns an error outside this set.
type Kind uint8

const (
	// KindEmpty: operation requires a non-empty tree.
	KindEmpty Kind = iota
	// KindExists: Insert conflicts with an already-present key.
	KindExists
	// KindInvalidKey: key byte length is zero after normalization.
	KindInvalidKey
	// KindNotFound: key or prefix not present, or predicate unmatched.
	KindNotFound
	// KindCallback: a fold visitor returned a negative value.
	KindCallback
	// KindOOM: node or path allocation failed.
	KindOOM
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindExists:
		return "exists"
	case KindInvalidKey:
		return "invalid key"
	case KindNotFound:
		return "not found"
	case KindCallback:
		return "callback"
	case KindOOM:
		return "oom"
	default:
		return "unknown"
	}
}

// Error is the error type every Tree operation returns. It carries a
// Kind from the closed taxonomy above plus, for KindCallback, the
// visitor's own negative return value so callers can distinguish
// causes (spec.md §7: "Callback is surfaced verbatim with the
// visitor's negative return carried as payload").
type Error struct {
	Kind    Kind
	Code    int // visitor return value, only meaningful for KindCallback
	message string
}

func (e *Error) Error() string {
	if e.Kind == KindCallback {
		return fmt.Sprintf("art: %s (code %d)", e.Kind, e.Code)
	}
	if e.message != "" {
		return fmt.Sprintf("art: %s: %s", e.Kind, e.message)
	}
	return fmt.Sprintf("art: %s", e.Kind)
}

// Is lets errors.Is(err, ErrNotFound) etc. match by Kind, ignoring the
// Code/message payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, message: msg} }

// Sentinel values for errors.Is comparisons. Each carries only a Kind;
// compare with errors.Is(err, art.ErrNotFound), never by pointer
// identity, since operations construct fresh *Error values.
var (
	ErrEmpty      = &Error{Kind: KindEmpty}
	ErrExists     = &Error{Kind: KindExists}
	ErrInvalidKey = &Error{Kind: KindInvalidKey}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrCallback   = &Error{Kind: KindCallback}
	ErrOOM        = &Error{Kind: KindOOM}
)

// callbackErr wraps a visitor's negative return value as an *Error of
// KindCallback, per spec.md §7/§6 (fold callback: "negative is a user
// error (mapped to E_CALLBACK)").
func callbackErr(code int) *Error {
	return &Error{Kind: KindCallback, Code: code}
}
