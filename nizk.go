package icefrost

import (
	"errors"
	"io"

	"github.com/gtank/ristretto255"
)

// ProofOfSecretKey is a Schnorr NIZK proving knowledge of the scalar a
// behind a commitment C = a·G, domain-separated by a context string and
// the prover's index so a proof cannot be replayed across ceremonies or
// reattributed to a different dealer.
type ProofOfSecretKey struct {
	R *Point
	S *Scalar
}

// proveSecretKey builds a "PoSK" NIZK: pick random
// k, R = k·G, c = H_s("PoSK" || ctx || i || C || R), s = k + c·a.
func proveSecretKey(rng io.Reader, ctx string, index ParticipantIndex, a *Scalar, c *Point) (*ProofOfSecretKey, error) {
	kBytes := make([]byte, 64)
	if _, err := io.ReadFull(rng, kBytes); err != nil {
		return nil, err
	}
	k, err := ristretto255.NewScalar().SetUniformBytes(kBytes)
	if err != nil {
		return nil, err
	}

	r := basepointMul(k)

	challenge := posKChallenge(ctx, index, c, r)

	s := addScalars(k, mulScalars(challenge, a))

	scrub(kBytes)

	return &ProofOfSecretKey{R: r, S: s}, nil
}

// Verify checks s·G =? R + c·C, recomputing c from the transcript. It
// rejects a proof whose R is the identity element.
func (p *ProofOfSecretKey) Verify(ctx string, index ParticipantIndex, c *Point) error {
	if isIdentity(p.R) {
		return errors.New("icefrost: proof of secret key has identity nonce commitment")
	}

	challenge := posKChallenge(ctx, index, c, p.R)

	lhs := basepointMul(p.S)
	rhs := addPoints(p.R, scalarMulPoint(challenge, c))

	if lhs.Equal(rhs) != 1 {
		return errors.New("icefrost: proof of secret key failed to verify")
	}
	return nil
}

// posKChallenge computes c = H_s("PoSK" || ctx || i || C || R).
func posKChallenge(ctx string, index ParticipantIndex, c, r *Point) *Scalar {
	return hashToScalar("PoSK", []byte(ctx), encodeUint16(uint16(index)), c.Bytes(), r.Bytes())
}
