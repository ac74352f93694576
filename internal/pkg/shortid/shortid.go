// Package shortid generates opaque, collision-resistant random identifiers.
//
// Uniqueness is probabilistic: ids are drawn from crypto/rand over a
// configurable alphabet and never checked against previously issued ones.
package shortid

import gonanoid "github.com/matoous/go-nanoid/v2"

// New returns a URL-safe id suitable for cart line items.
func New() string {
	return gonanoid.Must()
}

// Generate returns an id of the given size drawn from alphabet.
// The alphabet may contain multi-byte runes.
func Generate(alphabet string, size int) string {
	return gonanoid.MustGenerate(alphabet, size)
}
