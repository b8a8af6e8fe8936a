package axis

import (
	"fmt"
	"strings"
)

// PairKey addresses an undirected relationship between two characters.
// The IDs are stored sorted so that lookups are commutative.
type PairKey struct {
	A string
	B string
}

// NewPairKey canonicalizes a character pair. NewPairKey(a, b) and
// NewPairKey(b, a) produce the same key.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// String renders the key in the persisted "idA:idB" form.
func (k PairKey) String() string {
	return k.A + ":" + k.B
}

// ParsePairKey parses the persisted "idA:idB" form back into a key.
func ParsePairKey(s string) (PairKey, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return PairKey{}, fmt.Errorf("malformed pair key %q", s)
	}
	return NewPairKey(parts[0], parts[1]), nil
}
