package icefrost

import "sort"

// SignerEntry is one member of a frozen signer set: a participant index and
// the public nonce commitment pair it published before signing began.
type SignerEntry struct {
	Index ParticipantIndex
	D, E  *Point
}

// Signers is the canonically-ordered signer set that feeds the binding
// factor transcript. It is morally a set, but must be sorted by index at
// every use since it feeds a hash; Sorted returns a defensive sorted copy
// rather than relying on caller discipline.
type Signers []*SignerEntry

// Sorted returns a copy of s ordered by ascending index.
func (s Signers) Sorted() Signers {
	out := make(Signers, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Indices returns the participant indices in sorted order.
func (s Signers) Indices() []ParticipantIndex {
	sorted := s.Sorted()
	out := make([]ParticipantIndex, len(sorted))
	for i, e := range sorted {
		out[i] = e.Index
	}
	return out
}

// Encode produces the canonical encoding
// concat(encode_u16(index) || encode(D) || encode(E)) over signers sorted
// by index.
func (s Signers) Encode() []byte {
	sorted := s.Sorted()
	out := make([]byte, 0, len(sorted)*(2+32+32))
	for _, e := range sorted {
		out = append(out, encodeUint16(uint16(e.Index))...)
		out = append(out, e.D.Bytes()...)
		out = append(out, e.E.Bytes()...)
	}
	return out
}

// find returns the entry for index, or nil.
func (s Signers) find(index ParticipantIndex) *SignerEntry {
	for _, e := range s {
		if e.Index == index {
			return e
		}
	}
	return nil
}

// computeBindingFactors derives ρ_ℓ =
// H_s("rho" || ℓ || message_hash || encode(signers)) for every signer ℓ.
func computeBindingFactors(messageHash []byte, signers Signers) map[ParticipantIndex]*Scalar {
	encoded := signers.Encode()
	out := make(map[ParticipantIndex]*Scalar, len(signers))
	for _, e := range signers {
		out[e.Index] = hashToScalar("rho", encodeUint16(uint16(e.Index)), messageHash, encoded)
	}
	return out
}

// computeGroupCommitment computes R = Σ_ℓ (D_ℓ + ρ_ℓ·E_ℓ).
func computeGroupCommitment(signers Signers, bindingFactors map[ParticipantIndex]*Scalar) *Point {
	r := identity()
	for _, e := range signers {
		rho := bindingFactors[e.Index]
		term := addPoints(e.D, scalarMulPoint(rho, e.E))
		r = addPoints(r, term)
	}
	return r
}

// computeChallenge computes c =
// H_s("chal" || encode(R) || encode(GK) || message_hash).
func computeChallenge(r, groupKey *Point, messageHash []byte) *Scalar {
	return hashToScalar("chal", r.Bytes(), groupKey.Bytes(), messageHash)
}

// IndividualSecretKey is a signer's long-lived share s_i of the group
// secret, produced by a DKG ceremony's Finish.
type IndividualSecretKey struct {
	Index ParticipantIndex
	Share *Scalar
}

// IndividualPublicKey is Y_i, the verification key for signer i's partial
// signatures.
type IndividualPublicKey struct {
	Index ParticipantIndex
	Value *Point
}

// Public derives Y_i = s_i·G. The DKG also computes Y_i directly from
// commitments during ToRoundTwo without needing any individual secret
// share; both must agree, which keygen_test.go checks.
func (sk *IndividualSecretKey) Public() *IndividualPublicKey {
	return &IndividualPublicKey{Index: sk.Index, Value: basepointMul(sk.Share)}
}

// PartialSignature is signer i's contribution z_i.
type PartialSignature struct {
	Index ParticipantIndex
	Z     *Scalar
}

// Sign consumes the commitment share at slot, derives the binding factor,
// group commitment, challenge and Lagrange coefficient for this signer's
// index over the frozen set, and produces z_i = d_i + ρ_i·e_i + λ_i·c·s_i.
func (sk *IndividualSecretKey) Sign(messageHash []byte, groupKey *Point, shares *CommitmentShareList, slot int, signers Signers) (*PartialSignature, error) {
	if signers.find(sk.Index) == nil {
		return nil, &SignerNotIncludedError{Index: sk.Index}
	}

	d, e, err := shares.consume(slot)
	if err != nil {
		return nil, err
	}

	bindingFactors := computeBindingFactors(messageHash, signers)
	r := computeGroupCommitment(signers, bindingFactors)
	c := computeChallenge(r, groupKey, messageHash)
	lambda := lagrangeCoefficient(sk.Index, signers.Indices())

	rho := bindingFactors[sk.Index]
	z := addScalars(d, mulScalars(rho, e))
	z = addScalars(z, mulScalars(lambda, mulScalars(c, sk.Share)))

	return &PartialSignature{Index: sk.Index, Z: z}, nil
}
