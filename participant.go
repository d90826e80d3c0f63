package icefrost

import (
	"io"

	"github.com/gtank/ristretto255"
	"github.com/toposware/icefrost/pairwise"
)

// ParticipantIndex identifies a participant within a single ceremony. It is
// never zero: index 0 is reserved as "not a valid evaluation point".
type ParticipantIndex uint16

// Parameters fixes (n, t) for the lifetime of a group key.
type Parameters struct {
	N, T uint16
}

// Validate checks 1 ≤ t ≤ n ≤ 255.
func (p Parameters) Validate() error {
	if p.T < 1 || p.T > p.N || p.N > 255 {
		return &InvalidParametersError{N: p.N, T: p.T}
	}
	return nil
}

// Participant is the public record a dealer broadcasts in round one: its
// index, its static DH public key, its polynomial commitment vector, and a
// proof that it knows the secret behind the vector's first commitment.
type Participant struct {
	Index           ParticipantIndex
	DHPublicKey     *pairwise.PublicKey
	Commitments     []*Point
	ProofOfSecretKey *ProofOfSecretKey
}

// NewDealer generates a fresh degree-(t-1) polynomial, commits to its
// coefficients, proves knowledge of the constant term, and returns the
// public Participant record alongside the private coefficients and DH
// secret key the caller must hold onto for round one and then scrub.
func NewDealer(params Parameters, index ParticipantIndex, ctx string, rng io.Reader) (participant *Participant, coeffs []*Scalar, dhSecret *pairwise.PrivateKey, err error) {
	if err := params.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if index == 0 {
		return nil, nil, nil, &InvalidParametersError{N: params.N, T: params.T}
	}

	coeffs = make([]*Scalar, params.T)
	commitments := make([]*Point, params.T)
	for i := range coeffs {
		buf := make([]byte, 64)
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, nil, nil, err
		}
		c, err := ristretto255.NewScalar().SetUniformBytes(buf)
		if err != nil {
			return nil, nil, nil, err
		}
		coeffs[i] = c
		commitments[i] = basepointMul(c)
	}

	dhSecret, dhPublic, err := pairwise.GenerateKey(rng)
	if err != nil {
		return nil, nil, nil, err
	}

	proof, err := proveSecretKey(rng, ctx, index, coeffs[0], commitments[0])
	if err != nil {
		return nil, nil, nil, err
	}

	return &Participant{
		Index:            index,
		DHPublicKey:      dhPublic,
		Commitments:      commitments,
		ProofOfSecretKey: proof,
	}, coeffs, dhSecret, nil
}

// verify checks this participant's proof of knowledge and commitment
// vector shape, as required before it can be admitted to round one.
func (p *Participant) verify(params Parameters, ctx string) error {
	if len(p.Commitments) != int(params.T) {
		return &InvalidCommitmentError{Index: p.Index}
	}
	for _, c := range p.Commitments {
		if isIdentity(c) {
			return &InvalidCommitmentError{Index: p.Index}
		}
	}
	if err := p.ProofOfSecretKey.Verify(ctx, p.Index, p.Commitments[0]); err != nil {
		return &InvalidProofOfKnowledgeError{Index: p.Index}
	}
	return nil
}
