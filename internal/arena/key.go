package arena

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned when a textual key cannot be parsed.
var ErrMalformedKey = errors.New("arena: malformed key")

// Key identifies a value stored in an Arena. The zero Key never resolves.
type Key struct {
	index      uint32
	generation uint32
}

// NewKey builds a key from its parts. It exists for decoding and tests;
// keys used at runtime should come from an Arena.
func NewKey(index, generation uint32) Key {
	return Key{index: index, generation: generation}
}

// Index returns the slot index of the key.
func (k Key) Index() uint32 { return k.index }

// Generation returns the slot generation the key was minted with.
func (k Key) Generation() uint32 { return k.generation }

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool { return k.generation == 0 }

// Compare orders keys by index, then by generation.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.index, other.index); c != 0 {
		return c
	}
	return cmp.Compare(k.generation, other.generation)
}

// String renders the key as "<index>v<generation>".
func (k Key) String() string {
	return strconv.FormatUint(uint64(k.index), 10) + "v" + strconv.FormatUint(uint64(k.generation), 10)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey parses the "<index>v<generation>" form produced by String.
func ParseKey(s string) (Key, error) {
	idx, gen, ok := strings.Cut(s, "v")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}
	index, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q: %v", ErrMalformedKey, s, err)
	}
	generation, err := strconv.ParseUint(gen, 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q: %v", ErrMalformedKey, s, err)
	}
	if generation == 0 {
		return Key{}, fmt.Errorf("%w: %q: zero generation", ErrMalformedKey, s)
	}
	return Key{index: uint32(index), generation: uint32(generation)}, nil
}
