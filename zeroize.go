package icefrost

// scrub overwrites b with zeros in place. It is used to clear the random
// seed buffers behind the PoSK nonce, the DH-proof nonce and the commitment
// share nonces before they are dropped. The coefficient seed buffers in
// NewDealer, the DH shared point and derived key bytes in pairwise, and the
// decrypted share plaintext in open are not passed through it.
//
// There is no widely-used Go equivalent of a dedicated zeroize crate, so
// this stays a deliberate stdlib corner rather than a concern handed to a
// library; see DESIGN.md.
func scrub(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// scrubScalar overwrites s's value with zero in place. ristretto255.Scalar
// keeps its backing bytes unexported, so this is the only way to scrub a
// live *Scalar rather than merely dropping the reference to it.
func scrubScalar(s *Scalar) {
	var zero [32]byte
	if _, err := s.SetCanonicalBytes(zero[:]); err != nil {
		panic(err)
	}
}
