package icefrost

import "fmt"

// InvalidParametersError reports a malformed (n,t) pair.
type InvalidParametersError struct {
	N, T uint16
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("icefrost: invalid parameters n=%d t=%d", e.N, e.T)
}

// InvalidProofOfKnowledgeError reports a dealer whose PoSK failed to verify.
type InvalidProofOfKnowledgeError struct {
	Index ParticipantIndex
}

func (e *InvalidProofOfKnowledgeError) Error() string {
	return fmt.Sprintf("icefrost: invalid proof of knowledge from participant %d", e.Index)
}

// InvalidCommitmentError reports a commitment vector of the wrong length, or
// containing the identity element in some slot.
type InvalidCommitmentError struct {
	Index ParticipantIndex
}

func (e *InvalidCommitmentError) Error() string {
	return fmt.Sprintf("icefrost: invalid commitment vector from participant %d", e.Index)
}

// DuplicateIndexError reports two participants claiming the same index.
type DuplicateIndexError struct {
	Index ParticipantIndex
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("icefrost: duplicate participant index %d", e.Index)
}

// ShareDecryptionFailedError reports an AEAD failure opening a share sent by
// the named sender.
type ShareDecryptionFailedError struct {
	Sender ParticipantIndex
}

func (e *ShareDecryptionFailedError) Error() string {
	return fmt.Sprintf("icefrost: failed to decrypt share from participant %d", e.Sender)
}

// InvalidShareError reports a share that decrypted cleanly but failed its
// commitment check.
type InvalidShareError struct {
	Sender ParticipantIndex
}

func (e *InvalidShareError) Error() string {
	return fmt.Sprintf("icefrost: share from participant %d fails commitment check", e.Sender)
}

// ComplaintsError aggregates every complaint raised during round two.
type ComplaintsError struct {
	Complaints []*Complaint
}

func (e *ComplaintsError) Error() string {
	return fmt.Sprintf("icefrost: %d complaint(s) raised during round two", len(e.Complaints))
}

// MissingCommitmentShareError reports an already-consumed (or out-of-range)
// commitment share slot.
type MissingCommitmentShareError struct {
	Slot int
}

func (e *MissingCommitmentShareError) Error() string {
	return fmt.Sprintf("icefrost: commitment share slot %d already used or out of range", e.Slot)
}

// SignerNotIncludedError reports a signing call for an index outside the
// frozen signer set.
type SignerNotIncludedError struct {
	Index ParticipantIndex
}

func (e *SignerNotIncludedError) Error() string {
	return fmt.Sprintf("icefrost: participant %d is not in the frozen signer set", e.Index)
}

// MissingPartialError reports the indices lacking a partial signature at
// finalize time.
type MissingPartialError struct {
	Indices []ParticipantIndex
}

func (e *MissingPartialError) Error() string {
	return fmt.Sprintf("icefrost: missing partial signatures from %v", e.Indices)
}

// MisbehavingSignersError reports the indices whose partial signatures fail
// individual verification after an aggregate mismatch.
type MisbehavingSignersError struct {
	Indices []ParticipantIndex
}

func (e *MisbehavingSignersError) Error() string {
	return fmt.Sprintf("icefrost: misbehaving signer(s) %v", e.Indices)
}

// VerificationFailedError reports a final Schnorr verification failure.
type VerificationFailedError struct{}

func (e *VerificationFailedError) Error() string {
	return "icefrost: signature verification failed"
}
