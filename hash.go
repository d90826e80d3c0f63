package icefrost

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/gtank/ristretto255"
)

// hashToScalar computes a domain-separated, tagged SHA-512 digest of the
// given fields and reduces it to a Scalar via wide reduction: hash ::=
// SHA-512(tag || field...) reduced mod the group order.
func hashToScalar(tag string, fields ...[]byte) *Scalar {
	h := sha512.New()
	h.Write([]byte(tag))
	for _, f := range fields {
		h.Write(f)
	}
	digest := h.Sum(nil)

	s, err := ristretto255.NewScalar().SetUniformBytes(digest)
	if err != nil {
		// SetUniformBytes only fails on a buffer shorter than 64 bytes; a
		// SHA-512 digest is always exactly 64.
		panic(err)
	}
	return s
}

// encodeUint16 encodes v as a little-endian 2-byte field, the shape used by
// every transcript that binds a ParticipantIndex.
func encodeUint16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// computeMessageHash computes H("msg" || ctx || msg), run once per signing
// session and reused by every signer and the aggregator.
func computeMessageHash(ctx string, msg []byte) []byte {
	h := sha512.New()
	h.Write([]byte("msg"))
	h.Write([]byte(ctx))
	h.Write(msg)
	return h.Sum(nil)
}
