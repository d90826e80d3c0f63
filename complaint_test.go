package icefrost

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/toposware/icefrost/pairwise"
)

// TestVerifyComplaintConfirmsRogueCommitment builds the same tampered-
// commitment scenario as keygen_test.go's TestRogueCommitmentTriggersComplaint
// and checks that a third party holding only public keys and the accused's
// commitments, never the complainant's DH secret, can independently
// confirm the resulting Complaint.
func TestVerifyComplaintConfirmsRogueCommitment(t *testing.T) {
	params := Parameters{N: 3, T: 2}

	dealers := make(map[ParticipantIndex]*Participant, params.N)
	coeffsByIndex := make(map[ParticipantIndex][]*Scalar, params.N)
	dhByIndex := make(map[ParticipantIndex]*pairwise.PrivateKey, params.N)

	publicList := make([]*Participant, 0, params.N)
	for i := uint16(1); i <= params.N; i++ {
		idx := ParticipantIndex(i)
		p, coeffs, dh, err := NewDealer(params, idx, testContext, rand.Reader)
		if err != nil {
			t.Fatalf("NewDealer(%d): %v", idx, err)
		}
		dealers[idx] = p
		coeffsByIndex[idx] = coeffs
		dhByIndex[idx] = dh
		publicList = append(publicList, p)
	}

	tamperedP3 := &Participant{
		Index:            dealers[3].Index,
		DHPublicKey:      dealers[3].DHPublicKey,
		ProofOfSecretKey: dealers[3].ProofOfSecretKey,
		Commitments:      append([]*Point{}, dealers[3].Commitments...),
	}
	tamperedP3.Commitments[1] = addPoints(tamperedP3.Commitments[1], basepointMul(oneScalar()))

	p1View := make([]*Participant, len(publicList))
	for i, p := range publicList {
		if p.Index == 3 {
			p1View[i] = tamperedP3
			continue
		}
		p1View[i] = p
	}

	roundOne := make(map[ParticipantIndex]*RoundOneState, params.N)
	for i := uint16(1); i <= params.N; i++ {
		idx := ParticipantIndex(i)
		view := publicList
		if idx == 1 {
			view = p1View
		}
		state, err := NewInitial(params, dhByIndex[idx], idx, coeffsByIndex[idx], view, testContext, rand.Reader)
		if err != nil {
			t.Fatalf("NewInitial(%d): %v", idx, err)
		}
		roundOne[idx] = state
	}

	incoming := make(map[ParticipantIndex][]*EncryptedSecretShare, params.N)
	for _, state := range roundOne {
		for _, share := range state.TheirEncryptedSecretShares() {
			incoming[share.RecipientIndex] = append(incoming[share.RecipientIndex], share)
		}
	}

	_, err := roundOne[1].ToRoundTwo(incoming[1], rand.Reader)
	var complaintsErr *ComplaintsError
	if !errors.As(err, &complaintsErr) {
		t.Fatalf("expected a ComplaintsError, got %v", err)
	}
	complaint := complaintsErr.Complaints[0]

	if err := VerifyComplaint(complaint, testContext, dealers[1].DHPublicKey.Point(), dealers[3].DHPublicKey.Point(), tamperedP3.Commitments); err != nil {
		t.Fatalf("VerifyComplaint rejected a genuine complaint: %v", err)
	}

	// A verifier using the dealer's true, untampered commitments instead
	// of the tampered view the complainant actually saw must not confirm
	// it: the claimed decrypted share matches the real polynomial there.
	if err := VerifyComplaint(complaint, testContext, dealers[1].DHPublicKey.Point(), dealers[3].DHPublicKey.Point(), dealers[3].Commitments); err == nil {
		t.Fatal("expected VerifyComplaint to reject the complaint against the dealer's true commitments")
	}
}

func TestDeduplicateComplaints(t *testing.T) {
	a := &Complaint{ComplainantIndex: 1, AccusedIndex: 3}
	b := &Complaint{ComplainantIndex: 2, AccusedIndex: 3}
	aAgain := &Complaint{ComplainantIndex: 1, AccusedIndex: 3}

	out := DeduplicateComplaints([]*Complaint{a, b, aAgain})
	if len(out) != 2 {
		t.Fatalf("expected 2 deduplicated complaints, got %d", len(out))
	}
	if out[0] != a || out[1] != b {
		t.Fatal("expected the first occurrence per complainant to be kept, in order")
	}
}
