package icefrost

import "sort"

// SignatureAggregator collects commitment shares and partial signatures for
// a single signing session and produces the final ThresholdSignature. It
// stores its inputs once at construction and computes the message hash
// exactly once.
type SignatureAggregator struct {
	params      Parameters
	groupKey    *Point
	ctx         string
	msg         []byte
	messageHash []byte

	signers     map[ParticipantIndex]*SignerEntry
	publicKeys  map[ParticipantIndex]*IndividualPublicKey
	partials    map[ParticipantIndex]*PartialSignature
}

// NewSignatureAggregator constructs an aggregator for a fixed (params,
// groupKey, ctx, msg), computing message_hash = compute_message_hash(ctx,
// msg) once up front.
func NewSignatureAggregator(params Parameters, groupKey *Point, ctx string, msg []byte) *SignatureAggregator {
	return &SignatureAggregator{
		params:      params,
		groupKey:    groupKey,
		ctx:         ctx,
		msg:         msg,
		messageHash: computeMessageHash(ctx, msg),
		signers:     make(map[ParticipantIndex]*SignerEntry),
		publicKeys:  make(map[ParticipantIndex]*IndividualPublicKey),
		partials:    make(map[ParticipantIndex]*PartialSignature),
	}
}

// IncludeSigner registers a signer's public nonce commitment and
// individual public key share. A duplicate index silently overwrites the
// previous entry.
func (a *SignatureAggregator) IncludeSigner(index ParticipantIndex, d, e *Point, publicKey *IndividualPublicKey) error {
	if index < 1 || uint16(index) > a.params.N {
		return &InvalidParametersError{N: a.params.N, T: a.params.T}
	}
	a.signers[index] = &SignerEntry{Index: index, D: d, E: e}
	a.publicKeys[index] = publicKey
	return nil
}

// GetSigners returns the canonical ordered-by-index signer set, the view
// used as the binding-factor transcript input.
func (a *SignatureAggregator) GetSigners() Signers {
	out := make(Signers, 0, len(a.signers))
	for _, e := range a.signers {
		out = append(out, e)
	}
	return Signers(out).Sorted()
}

// IncludePartialSignature appends a partial signature with no validation;
// validation happens at Aggregate time.
func (a *SignatureAggregator) IncludePartialSignature(p *PartialSignature) {
	a.partials[p.Index] = p
}

// Finalize checks that at least t signers are registered and each has
// exactly one partial signature.
func (a *SignatureAggregator) Finalize() error {
	if len(a.signers) < int(a.params.T) {
		return &InvalidParametersError{N: a.params.N, T: a.params.T}
	}

	var missing []ParticipantIndex
	for index := range a.signers {
		if _, ok := a.partials[index]; !ok {
			missing = append(missing, index)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return &MissingPartialError{Indices: missing}
	}
	return nil
}

// Aggregate sums the partials into z, recomputes R and the challenge c,
// and checks z·G =? R + c·GK. On mismatch, it verifies every partial
// individually to localize the misbehaving signers.
func (a *SignatureAggregator) Aggregate() (*ThresholdSignature, error) {
	if err := a.Finalize(); err != nil {
		return nil, err
	}

	signers := a.GetSigners()
	bindingFactors := computeBindingFactors(a.messageHash, signers)
	r := computeGroupCommitment(signers, bindingFactors)
	c := computeChallenge(r, a.groupKey, a.messageHash)

	z := zeroScalar()
	for _, e := range signers {
		z = addScalars(z, a.partials[e.Index].Z)
	}

	lhs := basepointMul(z)
	rhs := addPoints(r, scalarMulPoint(c, a.groupKey))
	if lhs.Equal(rhs) == 1 {
		return &ThresholdSignature{R: r, Z: z}, nil
	}

	var misbehaving []ParticipantIndex
	for _, e := range signers {
		lambda := lagrangeCoefficient(e.Index, signers.Indices())
		rho := bindingFactors[e.Index]

		partialLhs := basepointMul(a.partials[e.Index].Z)
		nonceCommitment := addPoints(e.D, scalarMulPoint(rho, e.E))
		yi := a.publicKeys[e.Index].Value
		partialRhs := addPoints(nonceCommitment, scalarMulPoint(mulScalars(lambda, c), yi))

		if partialLhs.Equal(partialRhs) != 1 {
			misbehaving = append(misbehaving, e.Index)
		}
	}

	return nil, &MisbehavingSignersError{Indices: misbehaving}
}

func zeroScalar() *Scalar {
	var b [32]byte
	s, err := decodeScalar(b[:])
	if err != nil {
		panic(err)
	}
	return s
}
