// Package pairwise implements the static Diffie-Hellman key exchange used
// to derive a per-dealer-recipient symmetric key for the encrypted share
// channel. These keys are long-lived for the duration of a single
// ceremony, not freshly generated per message, so the exchange is
// static-static rather than ephemeral-static.
package pairwise

import (
	"crypto/sha256"
	"io"

	"github.com/gtank/ristretto255"
	"golang.org/x/crypto/hkdf"
)

// PrivateKey is a participant's static Diffie-Hellman secret, sk_dh.
type PrivateKey struct {
	scalar *ristretto255.Scalar
}

// PublicKey is sk_dh·G, pk_dh.
type PublicKey struct {
	point *ristretto255.Element
}

// GenerateKey samples a fresh static keypair from rng.
func GenerateKey(rng io.Reader) (*PrivateKey, *PublicKey, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, nil, err
	}
	sk, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		return nil, nil, err
	}
	pk := ristretto255.NewIdentityElement().ScalarBaseMult(sk)

	return &PrivateKey{scalar: sk}, &PublicKey{point: pk}, nil
}

// Bytes returns the 32-byte canonical encoding of the public key.
func (pk *PublicKey) Bytes() []byte {
	return pk.point.Bytes()
}

// PublicKeyFromBytes decodes a canonical 32-byte Ristretto255 encoding.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{point: p}, nil
}

// Ecdh performs the static-static Diffie-Hellman exchange sk·pk and expands
// the resulting shared point through HKDF-SHA256 into a 32-byte symmetric
// key, ready for an AEAD seal/open.
func (pk *PrivateKey) Ecdh(peer *PublicKey, info []byte) (*SymmetricKey, error) {
	shared := ristretto255.NewIdentityElement().ScalarMult(pk.scalar, peer.point)

	reader := hkdf.New(sha256.New, shared.Bytes(), nil, info)
	var key [32]byte
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return nil, err
	}
	return newSymmetricKey(key), nil
}

// Scrub zeros the backing scalar bytes. Callers must not use pk after this.
func (pk *PrivateKey) Scrub() {
	var zero [32]byte
	if _, err := pk.scalar.SetCanonicalBytes(zero[:]); err != nil {
		panic(err)
	}
}

// Scalar exposes the raw DH secret. It exists for the complaint/
// justification machinery, which must prove properties about the secret
// itself (a Chaum-Pedersen proof of equality of discrete logs) rather than
// only ever deriving a SymmetricKey from it.
func (pk *PrivateKey) Scalar() *ristretto255.Scalar {
	return pk.scalar
}

// Point exposes the raw public point underlying pk.
func (pk *PublicKey) Point() *ristretto255.Element {
	return pk.point
}

// SharedPoint returns the raw DH point sk·peer, before it is run through
// HKDF. The complaint/justification machinery needs this point itself (not
// just the symmetric key derived from it) so a third party can be handed
// the point directly and redo the key derivation without learning sk.
func (pk *PrivateKey) SharedPoint(peer *PublicKey) *ristretto255.Element {
	return ristretto255.NewIdentityElement().ScalarMult(pk.scalar, peer.point)
}
