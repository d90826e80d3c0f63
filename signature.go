package icefrost

import "fmt"

// ThresholdSignature is the final Schnorr signature (R, z) produced by
// aggregation.
type ThresholdSignature struct {
	R *Point
	Z *Scalar
}

// Verify recomputes c = H_s("chal" || encode(R) ||
// encode(GK) || message_hash) and accepts iff z·G == R + c·GK, using the
// Element/Scalar types' own constant-time Equal.
func (sig *ThresholdSignature) Verify(groupKey *Point, messageHash []byte) error {
	c := computeChallenge(sig.R, groupKey, messageHash)

	lhs := basepointMul(sig.Z)
	rhs := addPoints(sig.R, scalarMulPoint(c, groupKey))

	if lhs.Equal(rhs) != 1 {
		return &VerificationFailedError{}
	}
	return nil
}

// Bytes encodes the signature as encode(R)(32) || encode(z)(32) = 64
// bytes. This layout is shape-compatible with a standard ed25519
// signature, but verification under a stock ed25519 verifier is not
// guaranteed: Ristretto255 is not the ed25519/Edwards basepoint subgroup.
// Do not attempt to reconcile the two.
func (sig *ThresholdSignature) Bytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, sig.R.Bytes()...)
	out = append(out, sig.Z.Bytes()...)
	return out
}

// ThresholdSignatureFromBytes decodes the 64-byte layout produced by
// Bytes, rejecting non-canonical point or scalar encodings.
func ThresholdSignatureFromBytes(b []byte) (*ThresholdSignature, error) {
	if len(b) != 64 {
		return nil, fmt.Errorf("icefrost: threshold signature must be 64 bytes, got %d", len(b))
	}

	r, err := decodePoint(b[:32])
	if err != nil {
		return nil, fmt.Errorf("icefrost: invalid signature point: %w", err)
	}
	z, err := decodeScalar(b[32:])
	if err != nil {
		return nil, fmt.Errorf("icefrost: invalid signature scalar: %w", err)
	}
	return &ThresholdSignature{R: r, Z: z}, nil
}
