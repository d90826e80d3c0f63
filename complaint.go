package icefrost

import (
	"errors"
	"io"
)

// DHProof is a Chaum-Pedersen proof of equality of discrete logs: it shows
// that the same secret sk underlies both P = sk·G and Q = sk·H, without
// revealing sk. A complaint uses it to bind the complainant's decryption
// key to the shared secret point it claims to have derived, so a third
// party can redo the AEAD open themselves and confirm the complaint
// without ever learning the complainant's private key.
type DHProof struct {
	R1, R2 *Point
	S      *Scalar
}

func proveDH(rng io.Reader, ctx string, complainant, accused ParticipantIndex, sk *Scalar, h, p, q *Point) (*DHProof, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	k, err := uniformScalar(buf)
	if err != nil {
		return nil, err
	}

	r1 := basepointMul(k)
	r2 := scalarMulPoint(k, h)

	c := dhProofChallenge(ctx, complainant, accused, p, q, r1, r2)
	s := addScalars(k, mulScalars(c, sk))

	scrub(buf)
	return &DHProof{R1: r1, R2: r2, S: s}, nil
}

// Verify checks s·G =? R1 + c·P and s·H =? R2 + c·Q.
func (d *DHProof) Verify(ctx string, complainant, accused ParticipantIndex, h, p, q *Point) error {
	c := dhProofChallenge(ctx, complainant, accused, p, q, d.R1, d.R2)

	lhs1 := basepointMul(d.S)
	rhs1 := addPoints(d.R1, scalarMulPoint(c, p))
	lhs2 := scalarMulPoint(d.S, h)
	rhs2 := addPoints(d.R2, scalarMulPoint(c, q))

	if lhs1.Equal(rhs1) != 1 || lhs2.Equal(rhs2) != 1 {
		return errors.New("icefrost: DH proof failed to verify")
	}
	return nil
}

func dhProofChallenge(ctx string, complainant, accused ParticipantIndex, p, q, r1, r2 *Point) *Scalar {
	return hashToScalar("DHProof", []byte(ctx),
		encodeUint16(uint16(complainant)), encodeUint16(uint16(accused)),
		p.Bytes(), q.Bytes(), r1.Bytes(), r2.Bytes())
}

func uniformScalar(buf []byte) (*Scalar, error) {
	s, err := decodeScalarWide(buf)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Complaint is raised by a complainant against an accused dealer whose
// share fails the commitment check in round two. It carries enough for a
// third party, who has the accused's public commitments and the broadcast
// ciphertext but not the complainant's private key, to redo the AEAD open
// and confirm the share really is bad.
type Complaint struct {
	ComplainantIndex ParticipantIndex
	AccusedIndex     ParticipantIndex
	SharedSecret     *Point
	DecryptedShare   *Scalar
	Proof            *DHProof
}

// VerifyComplaint lets a third party confirm c is well-formed: the DH
// proof must hold against the complainant's and accused's known public
// keys, and the claimed decrypted share must actually disagree with the
// accused's published commitment vector. Unlike ToRoundTwo, this never
// needs the complainant's DH secret: only public keys, the complaint
// itself, and the accused's broadcast commitments.
func VerifyComplaint(c *Complaint, ctx string, complainantDH, accusedDH *Point, accusedCommitments []*Point) error {
	if err := c.Proof.Verify(ctx, c.ComplainantIndex, c.AccusedIndex, accusedDH, complainantDH, c.SharedSecret); err != nil {
		return err
	}

	expected := evaluateCommitment(accusedCommitments, c.ComplainantIndex)
	claimed := basepointMul(c.DecryptedShare)
	if claimed.Equal(expected) == 1 {
		return errors.New("icefrost: complaint's decrypted share actually agrees with the commitment")
	}
	return nil
}

// DeduplicateComplaints keeps only the first complaint raised by each
// complainant, preserving input order. Round two can see at most one
// complaint per sender in practice (ToRoundTwo raises one complaint per
// failed share), but an aggregation step merging complaints gathered out
// of band from multiple sources needs this guard.
func DeduplicateComplaints(complaints []*Complaint) []*Complaint {
	seen := make(map[ParticipantIndex]bool, len(complaints))
	out := make([]*Complaint, 0, len(complaints))
	for _, c := range complaints {
		if seen[c.ComplainantIndex] {
			continue
		}
		seen[c.ComplainantIndex] = true
		out = append(out, c)
	}
	return out
}

// evaluateCommitment computes Σⱼ index^j · Cⱼ, the public counterpart of
// evaluatePolynomial, used to check a decrypted share against a dealer's
// commitment vector.
func evaluateCommitment(commitments []*Point, index ParticipantIndex) *Point {
	x := scalarFromIndex(index)

	result := identity()
	power := oneScalar()
	for _, c := range commitments {
		result = addPoints(result, scalarMulPoint(power, c))
		power = mulScalars(power, x)
	}
	return result
}
