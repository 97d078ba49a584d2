// Package pick selects one identifier uniformly at random from a catalog
// sequence.
package pick

import (
	"errors"
	"math"
	"math/rand/v2"
)

// ErrEmptyCatalog is returned when the identifier sequence is empty.
var ErrEmptyCatalog = errors.New("pick: empty catalog")

// ErrOutOfRange is returned when the drawn index cannot address an element.
// This guards against a draw outside [0, 1) or a blank identifier slot; it is
// not an expected runtime path.
var ErrOutOfRange = errors.New("pick: index out of range")

// Source produces a draw in [0, 1). Substitutable so tests can pin the draw.
type Source func() float64

// Picker selects identifiers using a Source.
type Picker struct {
	src Source
}

// Option configures a Picker.
type Option func(*Picker)

// WithSource overrides the random source.
func WithSource(src Source) Option {
	return func(p *Picker) { p.src = src }
}

// New creates a Picker. The default source is math/rand/v2.
func New(opts ...Option) *Picker {
	p := &Picker{src: rand.Float64}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Pick returns one element of ids chosen at index floor(draw * len(ids)).
// An empty sequence yields ErrEmptyCatalog. A draw that maps outside the
// sequence, or onto an empty identifier, yields ErrOutOfRange.
func (p *Picker) Pick(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrEmptyCatalog
	}
	n := float64(len(ids))
	fidx := math.Floor(p.src() * n)
	// The float comparison also rejects NaN draws, whose int conversion is
	// implementation-dependent.
	if !(fidx >= 0 && fidx < n) {
		return "", ErrOutOfRange
	}
	idx := int(fidx)
	if ids[idx] == "" {
		return "", ErrOutOfRange
	}
	return ids[idx], nil
}
