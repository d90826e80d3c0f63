package icefrost

import (
	"errors"
	"io"
	"sort"

	"github.com/toposware/icefrost/pairwise"
)

// RoundOneState is the output of NewInitial: a dealer's commitment to its
// own coefficients, its encrypted shares to every other accepted
// participant, and the bookkeeping needed to run round two. Go has no
// move semantics, so the linear DKG typestate is enforced here with an
// explicit consumed flag checked at the next transition.
type RoundOneState struct {
	params Parameters
	ctx    string

	myIndex      ParticipantIndex
	myDHSecret   *pairwise.PrivateKey
	myOwnShare   *Scalar

	accepted    map[ParticipantIndex]*Participant
	order       []ParticipantIndex
	Accepted    []*Participant
	Rejected    []*Participant

	encryptedSharesOut []*EncryptedSecretShare

	consumed bool
}

// NewInitial validates every participant's PoSK and commitment vector,
// then deals an encrypted share of this dealer's polynomial to every
// other accepted participant.
func NewInitial(
	params Parameters,
	dhSecret *pairwise.PrivateKey,
	myIndex ParticipantIndex,
	myCoeffs []*Scalar,
	participants []*Participant,
	ctx string,
	rng io.Reader,
) (*RoundOneState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(participants) != int(params.N) {
		return nil, &InvalidParametersError{N: params.N, T: params.T}
	}
	if err := validateIndices(participants, params, myIndex); err != nil {
		return nil, err
	}

	accepted, rejected, errs := partitionParticipants(participants, params, ctx)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	acceptedByIndex := make(map[ParticipantIndex]*Participant, len(accepted))
	order := make([]ParticipantIndex, 0, len(accepted))
	for _, p := range accepted {
		acceptedByIndex[p.Index] = p
		order = append(order, p.Index)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var encryptedSharesOut []*EncryptedSecretShare
	for _, index := range order {
		if index == myIndex {
			continue
		}
		peer := acceptedByIndex[index]

		share := evaluatePolynomial(myCoeffs, index)
		key, err := dhSecret.Ecdh(peer.DHPublicKey, shareInfo(ctx))
		if err != nil {
			return nil, err
		}

		encrypted, err := sealShare(key, ctx, myIndex, index, share)
		if err != nil {
			return nil, err
		}
		encryptedSharesOut = append(encryptedSharesOut, encrypted)
		scrubScalar(share)
	}

	myOwnShare := evaluatePolynomial(myCoeffs, myIndex)

	for _, c := range myCoeffs {
		scrubScalar(c)
	}

	return &RoundOneState{
		params:             params,
		ctx:                ctx,
		myIndex:            myIndex,
		myDHSecret:         dhSecret,
		myOwnShare:         myOwnShare,
		accepted:           acceptedByIndex,
		order:              order,
		Accepted:           accepted,
		Rejected:           rejected,
		encryptedSharesOut: encryptedSharesOut,
	}, nil
}

// TheirEncryptedSecretShares returns the shares to dispatch to each peer,
// ordered by recipient index, excluding self.
func (s *RoundOneState) TheirEncryptedSecretShares() []*EncryptedSecretShare {
	out := make([]*EncryptedSecretShare, len(s.encryptedSharesOut))
	copy(out, s.encryptedSharesOut)
	return out
}

// ToRoundTwo decrypts every received share, recomputes f_d(me)·G, and
// compares it against the sender's published
// commitments, and raise a Complaint for any sender whose share fails.
// received must contain exactly one share from every other accepted
// participant, addressed to this dealer; this dealer's own share (computed
// locally in NewInitial) is folded in automatically.
func (s *RoundOneState) ToRoundTwo(received []*EncryptedSecretShare, rng io.Reader) (*RoundTwoState, error) {
	if s.consumed {
		return nil, errors.New("icefrost: round one state already consumed")
	}
	s.consumed = true

	bySender := make(map[ParticipantIndex]*EncryptedSecretShare, len(received))
	for _, e := range received {
		if e.RecipientIndex != s.myIndex {
			continue
		}
		if _, dup := bySender[e.SenderIndex]; dup {
			return nil, &DuplicateIndexError{Index: e.SenderIndex}
		}
		bySender[e.SenderIndex] = e
	}

	secretShareAcc := addScalars(zeroScalar(), s.myOwnShare)

	groupCommitmentSum := identity()
	individualPublicKeys := make(map[ParticipantIndex]*IndividualPublicKey, len(s.order))
	for _, i := range s.order {
		individualPublicKeys[i] = &IndividualPublicKey{Index: i, Value: identity()}
	}

	var complaints []*Complaint

	for _, senderIndex := range s.order {
		dealer := s.accepted[senderIndex]
		groupCommitmentSum = addPoints(groupCommitmentSum, dealer.Commitments[0])

		for _, i := range s.order {
			individualPublicKeys[i].Value = addPoints(individualPublicKeys[i].Value, evaluateCommitment(dealer.Commitments, i))
		}

		if senderIndex == s.myIndex {
			continue
		}

		encrypted, ok := bySender[senderIndex]
		if !ok {
			return nil, &ShareDecryptionFailedError{Sender: senderIndex}
		}

		key, err := s.myDHSecret.Ecdh(dealer.DHPublicKey, shareInfo(s.ctx))
		if err != nil {
			return nil, err
		}

		decrypted, err := encrypted.open(key, s.ctx)
		if err != nil {
			complaint, cerr := s.complain(rng, senderIndex, dealer, zeroScalar())
			if cerr != nil {
				return nil, cerr
			}
			complaints = append(complaints, complaint)
			continue
		}

		expected := evaluateCommitment(dealer.Commitments, s.myIndex)
		got := basepointMul(decrypted)
		if got.Equal(expected) != 1 {
			complaint, cerr := s.complain(rng, senderIndex, dealer, decrypted)
			if cerr != nil {
				return nil, cerr
			}
			complaints = append(complaints, complaint)
			continue
		}

		secretShareAcc = addScalars(secretShareAcc, decrypted)
	}

	s.myDHSecret.Scrub()

	if len(complaints) > 0 {
		return nil, &ComplaintsError{Complaints: complaints}
	}

	return &RoundTwoState{
		params:                s.params,
		ctx:                   s.ctx,
		myIndex:               s.myIndex,
		mySecretShare:         secretShareAcc,
		groupCommitmentSum:    groupCommitmentSum,
		individualPublicKeys:  individualPublicKeys,
	}, nil
}

// complain builds a Complaint against accused, binding this dealer's DH
// secret to the shared-secret point via a Chaum-Pedersen proof so a third
// party can redo the decryption (using the shared point directly, without
// ever learning the secret) and confirm the accusation.
func (s *RoundOneState) complain(rng io.Reader, accused ParticipantIndex, dealer *Participant, decrypted *Scalar) (*Complaint, error) {
	mySK := s.myDHSecret.Scalar()
	myPK := s.accepted[s.myIndex].DHPublicKey.Point()
	accusedPK := dealer.DHPublicKey.Point()
	sharedPoint := s.myDHSecret.SharedPoint(dealer.DHPublicKey)

	proof, err := proveDH(rng, s.ctx, s.myIndex, accused, mySK, accusedPK, myPK, sharedPoint)
	if err != nil {
		return nil, err
	}

	return &Complaint{
		ComplainantIndex: s.myIndex,
		AccusedIndex:     accused,
		SharedSecret:     sharedPoint,
		DecryptedShare:   decrypted,
		Proof:            proof,
	}, nil
}

func shareInfo(ctx string) []byte {
	return append([]byte("icefrost-share:"), []byte(ctx)...)
}

// RoundTwoState is produced by a successful ToRoundTwo: every received
// share checked out, so Finish can compute the group key and this
// participant's final secret key share.
type RoundTwoState struct {
	params Parameters
	ctx    string

	myIndex              ParticipantIndex
	mySecretShare        *Scalar
	groupCommitmentSum   *Point
	individualPublicKeys map[ParticipantIndex]*IndividualPublicKey

	consumed bool
}

// Finish returns the group key GK = Σ_d C_d,0 and this participant's
// IndividualSecretKey.
func (s *RoundTwoState) Finish() (*Point, *IndividualSecretKey, error) {
	if s.consumed {
		return nil, nil, errors.New("icefrost: round two state already consumed")
	}
	s.consumed = true

	return s.groupCommitmentSum, &IndividualSecretKey{Index: s.myIndex, Share: s.mySecretShare}, nil
}

// IndividualPublicKeys returns every signer's Yᵢ precomputed during round
// two, for i in [1,n], keyed by index.
func (s *RoundTwoState) IndividualPublicKeys() map[ParticipantIndex]*IndividualPublicKey {
	return s.individualPublicKeys
}

// validateIndices checks NewInitial's structural preconditions: unique
// indices in [1,n], and myIndex appearing exactly once.
func validateIndices(participants []*Participant, params Parameters, myIndex ParticipantIndex) error {
	seen := make(map[ParticipantIndex]bool, len(participants))
	sawMe := false
	for _, p := range participants {
		if p.Index < 1 || uint16(p.Index) > params.N {
			return &InvalidParametersError{N: params.N, T: params.T}
		}
		if seen[p.Index] {
			return &DuplicateIndexError{Index: p.Index}
		}
		seen[p.Index] = true
		if p.Index == myIndex {
			sawMe = true
		}
	}
	if !sawMe {
		return &InvalidParametersError{N: params.N, T: params.T}
	}
	return nil
}

// partitionParticipants verifies every participant's PoSK and commitment
// vector, splitting them into accepted/rejected.
func partitionParticipants(participants []*Participant, params Parameters, ctx string) (accepted, rejected []*Participant, errs []error) {
	for _, p := range participants {
		if err := p.verify(params, ctx); err != nil {
			rejected = append(rejected, p)
			errs = append(errs, err)
			continue
		}
		accepted = append(accepted, p)
	}
	return accepted, rejected, errs
}
