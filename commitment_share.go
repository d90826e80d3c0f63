package icefrost

import (
	"io"

	"github.com/gtank/ristretto255"
)

// NonceCommitment is the public half (D,E) of a single pre-generated
// commitment share.
type NonceCommitment struct {
	D, E *Point
}

// CommitmentShareList is a signer's pool of pre-generated (d,e)/(D,E)
// nonce pairs. Each slot is consumed by sign at most once; used tracks
// that single-use discipline with explicit flags and runtime rejection on
// reuse.
type CommitmentShareList struct {
	Index  ParticipantIndex
	d, e   []*Scalar
	Public []*NonceCommitment
	used   []bool
}

// GenerateCommitmentShareLists produces count fresh (d,e) pairs for the
// given signer index.
func GenerateCommitmentShareLists(rng io.Reader, index ParticipantIndex, count int) (*CommitmentShareList, error) {
	d := make([]*Scalar, count)
	e := make([]*Scalar, count)
	public := make([]*NonceCommitment, count)

	buf := make([]byte, 64)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		di, err := ristretto255.NewScalar().SetUniformBytes(buf)
		if err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		ei, err := ristretto255.NewScalar().SetUniformBytes(buf)
		if err != nil {
			return nil, err
		}

		d[i] = di
		e[i] = ei
		public[i] = &NonceCommitment{D: basepointMul(di), E: basepointMul(ei)}
	}
	scrub(buf)

	return &CommitmentShareList{
		Index:  index,
		d:      d,
		e:      e,
		Public: public,
		used:   make([]bool, count),
	}, nil
}

// consume marks slot used and returns the secret (d,e) pair, failing with
// MissingCommitmentShare if the slot is out of range or already consumed.
func (l *CommitmentShareList) consume(slot int) (d, e *Scalar, err error) {
	if slot < 0 || slot >= len(l.used) || l.used[slot] {
		return nil, nil, &MissingCommitmentShareError{Slot: slot}
	}
	l.used[slot] = true
	d, e = l.d[slot], l.e[slot]
	l.d[slot], l.e[slot] = nil, nil
	return d, e, nil
}
