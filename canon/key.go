// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// key.go — GraphKey: the public, comparable canonical form.
//
// Wire format (also the byte order used by Compare):
//   word 0        n (node count)
//   word 1        m (edge count)
//   words 2..     m pairs (i, j), 0 ≤ i < j < n, strictly increasing
// Every word is a big-endian uint32, so bytewise order equals word order.
//
// A Key is a plain value wrapping an immutable string: == is key equality and
// a Key may be used directly as a map key.

package canon

import (
	"encoding/base32"
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// GeohashBase32Alphabet is the alphabet of Key.String. It is in ASCII order,
// so text keys of equal length sort like their binary form.
const GeohashBase32Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Base32Encoding encodes keys to and from text.
var Base32Encoding = base32.NewEncoding(GeohashBase32Alphabet).WithPadding(base32.NoPadding)

// ErrMalformedKey is returned when decoding bytes or text that no graph maps to.
var ErrMalformedKey = errors.New("canon: malformed key")

const wordSz = 4

// Key is the canonical key of a graph. Two graphs have equal keys iff they are
// isomorphic. The zero Key belongs to no graph; see IsZero.
type Key struct {
	b string
}

func keyOf(c certificate) Key {
	buf := make([]byte, len(c)*wordSz)
	for i, w := range c {
		binary.BigEndian.PutUint32(buf[i*wordSz:], w)
	}
	return Key{b: string(buf)}
}

// Equal reports k == o.
func (k Key) Equal(o Key) bool { return k.b == o.b }

// Compare orders keys totally: -1, 0 or +1. Graphs with fewer nodes, then
// fewer edges, sort first.
func (k Key) Compare(o Key) int { return strings.Compare(k.b, o.b) }

// Hash is a 64-bit digest consistent with Equal.
func (k Key) Hash() uint64 { return xxhash.Sum64String(k.b) }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.b == "" }

// Order returns the node count of the keyed graph.
func (k Key) Order() int { return k.word(0) }

// Size returns the edge count of the keyed graph.
func (k Key) Size() int { return k.word(1) }

func (k Key) word(i int) int {
	if len(k.b) < (i+1)*wordSz {
		return 0
	}
	return int(binary.BigEndian.Uint32([]byte(k.b[i*wordSz : (i+1)*wordSz])))
}

// Edges returns the canonical edge list: pairs (i, j) with i < j in
// lexicographic order.
func (k Key) Edges() [][2]int {
	m := k.Size()
	out := make([][2]int, m)
	for e := range out {
		out[e] = [2]int{k.word(2 + 2*e), k.word(3 + 2*e)}
	}
	return out
}

// Graph rebuilds the canonical representative as an adjacency list.
func (k Key) Graph() AdjacencyList {
	return k.certificate().graph()
}

func (k Key) certificate() certificate {
	c := make(certificate, len(k.b)/wordSz)
	for i := range c {
		c[i] = binary.BigEndian.Uint32([]byte(k.b[i*wordSz : (i+1)*wordSz]))
	}
	return c
}

// Bytes returns a copy of the binary form.
func (k Key) Bytes() []byte { return []byte(k.b) }

// String returns the key as unpadded geohash base32.
func (k Key) String() string { return Base32Encoding.EncodeToString([]byte(k.b)) }

// MarshalBinary implements encoding.BinaryMarshaler.
func (k Key) MarshalBinary() ([]byte, error) { return k.Bytes(), nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The input must be a
// well-formed key.
func (k *Key) UnmarshalBinary(data []byte) error {
	key, err := KeyFromBytes(data)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	key, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// ParseKey decodes the output of Key.String.
func ParseKey(s string) (Key, error) {
	data, err := Base32Encoding.DecodeString(s)
	if err != nil {
		return Key{}, errors.Wrapf(ErrMalformedKey, "base32: %v", err)
	}
	return KeyFromBytes(data)
}

// KeyFromBytes validates and copies the binary form of a key.
func KeyFromBytes(data []byte) (Key, error) {
	if len(data) < 2*wordSz || len(data)%wordSz != 0 {
		return Key{}, errors.Wrapf(ErrMalformedKey, "length %d", len(data))
	}
	k := Key{b: string(data)}
	n, m := k.Order(), k.Size()
	if want := (2 + 2*m) * wordSz; len(data) != want {
		return Key{}, errors.Wrapf(ErrMalformedKey, "%d edges need %d bytes, have %d", m, want, len(data))
	}

	pi, pj := -1, -1
	for e := 0; e < m; e++ {
		i, j := k.word(2+2*e), k.word(3+2*e)
		switch {
		case i >= j || j >= n:
			return Key{}, errors.Wrapf(ErrMalformedKey, "edge %d: (%d,%d) with %d nodes", e, i, j, n)
		case i < pi || (i == pi && j <= pj):
			return Key{}, errors.Wrapf(ErrMalformedKey, "edge %d: (%d,%d) out of order", e, i, j)
		}
		pi, pj = i, j
	}
	return k, nil
}
