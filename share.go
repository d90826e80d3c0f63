package icefrost

import (
	"encoding/binary"
	"fmt"

	"github.com/gtank/ristretto255"
	"github.com/toposware/icefrost/pairwise"
)

// EncryptedSecretShare is the wire form of a single dealer-to-recipient
// Shamir share, encrypted under the pairwise DH key between them. The
// 64-byte layout (2+2+12+32+16) is fixed and total: a single tampered bit
// never changes its length, which a rogue-dealer test depends on.
type EncryptedSecretShare struct {
	SenderIndex    ParticipantIndex
	RecipientIndex ParticipantIndex
	Nonce          [pairwise.NonceSize]byte
	Ciphertext     [32 + pairwise.TagSize]byte
}

const encryptedSecretShareSize = 2 + 2 + pairwise.NonceSize + 32 + pairwise.TagSize

// sealShare encrypts the scalar share f_sender(recipient) under the
// pairwise key shared between sender and recipient. The caller derives that
// key as HKDF(K_{d,r}) with info = shareInfo(ctx); the sender and recipient
// indices are not inputs to the key derivation and are bound only through
// the additional data = d || r || ctx.
func sealShare(key *pairwise.SymmetricKey, ctx string, sender, recipient ParticipantIndex, share *Scalar) (*EncryptedSecretShare, error) {
	ad := shareAD(ctx, sender, recipient)

	nonce, ciphertext, err := key.Seal(share.Bytes(), ad)
	if err != nil {
		return nil, err
	}

	out := &EncryptedSecretShare{SenderIndex: sender, RecipientIndex: recipient}
	copy(out.Nonce[:], nonce)
	copy(out.Ciphertext[:], ciphertext)
	return out, nil
}

// open decrypts the share. The decrypted plaintext must be a canonical
// 32-byte scalar; an AEAD failure and a non-canonical plaintext are both
// reported as the same ShareDecryptionFailedError naming the sender.
func (e *EncryptedSecretShare) open(key *pairwise.SymmetricKey, ctx string) (*Scalar, error) {
	ad := shareAD(ctx, e.SenderIndex, e.RecipientIndex)

	plaintext, err := key.Open(e.Nonce[:], e.Ciphertext[:], ad)
	if err != nil {
		return nil, &ShareDecryptionFailedError{Sender: e.SenderIndex}
	}

	s, err := ristretto255.NewScalar().SetCanonicalBytes(plaintext)
	if err != nil {
		return nil, &ShareDecryptionFailedError{Sender: e.SenderIndex}
	}
	return s, nil
}

func shareAD(ctx string, sender, recipient ParticipantIndex) []byte {
	ad := make([]byte, 0, len(ctx)+4)
	ad = append(ad, encodeUint16(uint16(sender))...)
	ad = append(ad, encodeUint16(uint16(recipient))...)
	ad = append(ad, []byte(ctx)...)
	return ad
}

// Bytes encodes e as sender(2) || recipient(2) || nonce(12) || ciphertext(32) || tag(16).
func (e *EncryptedSecretShare) Bytes() []byte {
	b := make([]byte, 0, encryptedSecretShareSize)
	b = binary.LittleEndian.AppendUint16(b, uint16(e.SenderIndex))
	b = binary.LittleEndian.AppendUint16(b, uint16(e.RecipientIndex))
	b = append(b, e.Nonce[:]...)
	b = append(b, e.Ciphertext[:]...)
	return b
}

// EncryptedSecretShareFromBytes decodes the fixed 64-byte layout produced
// by Bytes. Decoding never fails on length-preserving byte tampering: the
// round trip is total.
func EncryptedSecretShareFromBytes(b []byte) (*EncryptedSecretShare, error) {
	if len(b) != encryptedSecretShareSize {
		return nil, fmt.Errorf("icefrost: encrypted secret share must be %d bytes, got %d", encryptedSecretShareSize, len(b))
	}

	e := &EncryptedSecretShare{
		SenderIndex:    ParticipantIndex(binary.LittleEndian.Uint16(b[0:2])),
		RecipientIndex: ParticipantIndex(binary.LittleEndian.Uint16(b[2:4])),
	}
	copy(e.Nonce[:], b[4:4+pairwise.NonceSize])
	copy(e.Ciphertext[:], b[4+pairwise.NonceSize:])
	return e, nil
}
