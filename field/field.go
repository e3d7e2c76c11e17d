// SPDX-License-Identifier: MIT

package field

// Element is the capability set every scalar of a Field provides.
// E is the concrete element type itself, so that generic code can be
// written once as func f[E Element[E]](...) and still return concrete values.
type Element[E any] interface {
	// Add returns a + b.
	Add(b E) E

	// Sub returns a - b.
	Sub(b E) E

	// Mul returns a * b.
	Mul(b E) E

	// Div returns a / b. Panics when b is zero.
	Div(b E) E

	// Neg returns -a.
	Neg() E

	// Inv returns the multiplicative inverse. Panics when a is zero.
	Inv() E

	// IsZero reports whether a is the additive identity.
	IsZero() bool

	// Equal reports whether a == b.
	Equal(b E) bool

	// String returns a human-readable form.
	String() string
}

// Field supplies the identities of an element type.
type Field[E Element[E]] interface {
	// Zero returns the additive identity.
	Zero() E

	// One returns the multiplicative identity.
	One() E
}
