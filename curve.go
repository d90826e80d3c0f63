package icefrost

import (
	"github.com/gtank/ristretto255"
)

// Point is a Ristretto255 group element. Every published commitment,
// public key, and nonce commitment in this protocol is a *Point.
type Point = ristretto255.Element

// Scalar is a value mod the Ristretto255 group order ℓ. Every secret
// coefficient, share, and nonce in this protocol is a *Scalar.
type Scalar = ristretto255.Scalar

// identity returns the group identity element. Commitment vectors and
// public keys must never contain it: see isIdentity.
func identity() *Point {
	return ristretto255.NewIdentityElement()
}

// basepointMul computes s·G for the Ristretto255 basepoint G.
func basepointMul(s *Scalar) *Point {
	return ristretto255.NewIdentityElement().ScalarBaseMult(s)
}

// isIdentity reports whether p is the group identity. A commitment or
// public key equal to the identity leaks that the corresponding scalar is
// zero and must always be rejected.
func isIdentity(p *Point) bool {
	return p.Equal(identity()) == 1
}

// decodePoint decodes a 32-byte canonical Ristretto255 encoding. Non-
// canonical encodings are rejected by ristretto255.Element.SetCanonicalBytes
// itself.
func decodePoint(b []byte) (*Point, error) {
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// decodeScalar decodes a 32-byte canonical little-endian scalar reduced
// mod ℓ. Non-canonical encodings are rejected.
func decodeScalar(b []byte) (*Scalar, error) {
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// decodeScalarWide reduces a 64-byte uniformly-random buffer into a Scalar,
// the wide-reduction counterpart of decodeScalar used whenever fresh
// randomness (rather than a transmitted value) needs to become a scalar.
func decodeScalarWide(b []byte) (*Scalar, error) {
	return ristretto255.NewScalar().SetUniformBytes(b)
}

// oneScalar returns the multiplicative identity.
func oneScalar() *Scalar {
	var b [32]byte
	b[0] = 1
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// scalarFromIndex encodes a ParticipantIndex as a Scalar. Participant
// indices are small positive integers used as polynomial evaluation
// points; this is the only place an index crosses into scalar arithmetic.
func scalarFromIndex(i ParticipantIndex) *Scalar {
	var b [32]byte
	b[0] = byte(i)
	b[1] = byte(i >> 8)
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		// A little-endian uint16 zero-padded to 32 bytes is always < ℓ;
		// this can never fail.
		panic(err)
	}
	return s
}

// evaluatePolynomial evaluates f(x) = coeffs[0] + coeffs[1]x + ... +
// coeffs[t-1]x^(t-1) at x = index, using Horner's method.
func evaluatePolynomial(coeffs []*Scalar, index ParticipantIndex) *Scalar {
	x := scalarFromIndex(index)
	n := len(coeffs)

	result := ristretto255.NewScalar().Add(coeffs[n-1], ristretto255.NewScalar())
	for i := n - 2; i >= 0; i-- {
		result.Multiply(result, x)
		result.Add(result, coeffs[i])
	}

	return result
}

// lagrangeCoefficient computes λ_i = Π_{j∈indices, j≠i} j/(j-i), the
// interpolation weight at x=0 for participant i over the given signing
// set.
func lagrangeCoefficient(i ParticipantIndex, indices []ParticipantIndex) *Scalar {
	num := oneScalar()
	den := oneScalar()

	iScalar := scalarFromIndex(i)

	for _, j := range indices {
		if j == i {
			continue
		}

		jScalar := scalarFromIndex(j)
		num.Multiply(num, jScalar)

		diff := ristretto255.NewScalar().Subtract(jScalar, iScalar)
		den.Multiply(den, diff)
	}

	denInv := ristretto255.NewScalar().Invert(den)
	return ristretto255.NewScalar().Multiply(num, denInv)
}

// addScalars returns a + b without mutating either argument.
func addScalars(a, b *Scalar) *Scalar {
	return ristretto255.NewScalar().Add(a, b)
}

// mulScalars returns a * b without mutating either argument.
func mulScalars(a, b *Scalar) *Scalar {
	return ristretto255.NewScalar().Multiply(a, b)
}

// addPoints returns a + b without mutating either argument.
func addPoints(a, b *Point) *Point {
	return ristretto255.NewIdentityElement().Add(a, b)
}

// scalarMulPoint returns s·p without mutating either argument.
func scalarMulPoint(s *Scalar, p *Point) *Point {
	return ristretto255.NewIdentityElement().ScalarMult(s, p)
}
