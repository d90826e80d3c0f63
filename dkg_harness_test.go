package icefrost

import (
	"crypto/rand"
	"testing"

	"github.com/toposware/icefrost/pairwise"
)

// runHonestCeremony runs a full dealer-initiated DKG across params.N
// participants as a sequence of plain calls, since every DKG participant
// must see every other's shares before proceeding. It fails the test
// immediately on any unexpected error.
func runHonestCeremony(t *testing.T, params Parameters, ctx string) (groupKey *Point, secretKeys map[ParticipantIndex]*IndividualSecretKey, roundTwo map[ParticipantIndex]*RoundTwoState) {
	t.Helper()

	type dealer struct {
		participant *Participant
		coeffs      []*Scalar
		dh          *pairwise.PrivateKey
	}

	dealers := make(map[ParticipantIndex]*dealer, params.N)
	publicList := make([]*Participant, 0, params.N)

	for i := uint16(1); i <= params.N; i++ {
		idx := ParticipantIndex(i)
		p, coeffs, dh, err := NewDealer(params, idx, ctx, rand.Reader)
		if err != nil {
			t.Fatalf("NewDealer(%d): %v", idx, err)
		}
		dealers[idx] = &dealer{participant: p, coeffs: coeffs, dh: dh}
		publicList = append(publicList, p)
	}

	roundOne := make(map[ParticipantIndex]*RoundOneState, params.N)
	for idx, d := range dealers {
		state, err := NewInitial(params, d.dh, idx, d.coeffs, publicList, ctx, rand.Reader)
		if err != nil {
			t.Fatalf("NewInitial(%d): %v", idx, err)
		}
		roundOne[idx] = state
	}

	// Collect every dealer's outgoing shares, grouped by recipient.
	incoming := make(map[ParticipantIndex][]*EncryptedSecretShare, params.N)
	for _, state := range roundOne {
		for _, share := range state.TheirEncryptedSecretShares() {
			incoming[share.RecipientIndex] = append(incoming[share.RecipientIndex], share)
		}
	}

	roundTwo = make(map[ParticipantIndex]*RoundTwoState, params.N)
	for idx, state := range roundOne {
		rt, err := state.ToRoundTwo(incoming[idx], rand.Reader)
		if err != nil {
			t.Fatalf("ToRoundTwo(%d): %v", idx, err)
		}
		roundTwo[idx] = rt
	}

	secretKeys = make(map[ParticipantIndex]*IndividualSecretKey, params.N)
	for idx, rt := range roundTwo {
		gk, sk, err := rt.Finish()
		if err != nil {
			t.Fatalf("Finish(%d): %v", idx, err)
		}
		if groupKey == nil {
			groupKey = gk
		} else if groupKey.Equal(gk) != 1 {
			t.Fatalf("participant %d disagrees on group key", idx)
		}
		secretKeys[idx] = sk
	}

	return groupKey, secretKeys, roundTwo
}
