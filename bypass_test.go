package icefrost

import (
	"crypto/rand"
	"testing"

	"github.com/gtank/ristretto255"
	"github.com/toposware/icefrost/internal/testutils"
)

// TestSigningWithGeneratedKeyShares exercises the signing/aggregation path
// against shares built directly by testutils.GenerateKeyShares rather than
// a full DKG ceremony, a shortcut worth taking when a test only needs a
// consistent (group key, shares) pair.
func TestSigningWithGeneratedKeyShares(t *testing.T) {
	params := Parameters{N: 4, T: 3}

	secretBuf := make([]byte, 64)
	if _, err := rand.Read(secretBuf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	secret, err := ristretto255.NewScalar().SetUniformBytes(secretBuf)
	if err != nil {
		t.Fatalf("SetUniformBytes: %v", err)
	}

	shares, err := testutils.GenerateKeyShares(rand.Reader, secret, int(params.N), int(params.T))
	if err != nil {
		t.Fatalf("GenerateKeyShares: %v", err)
	}

	groupKey := basepointMul(secret)
	secretKeys := make(map[ParticipantIndex]*IndividualSecretKey, params.N)
	publicKeys := make(map[ParticipantIndex]*IndividualPublicKey, params.N)
	for i, share := range shares {
		idx := ParticipantIndex(i + 1)
		sk := &IndividualSecretKey{Index: idx, Share: share}
		secretKeys[idx] = sk
		publicKeys[idx] = sk.Public()
	}

	ctx, msg := "bypass-test", []byte("signed without a DKG ceremony")
	signerIndices := []ParticipantIndex{1, 2, 4}

	agg := runSigningSession(t, params, groupKey, secretKeys, publicKeys, signerIndices, ctx, msg)

	sig, err := agg.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if err := sig.Verify(groupKey, computeMessageHash(ctx, msg)); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestGenerateKeySharesReconstructsSecret checks that Lagrange
// interpolation over any t-sized subset of testutils.GenerateKeyShares'
// output reconstructs the original secret, the property the signing
// bypass above depends on.
func TestGenerateKeySharesReconstructsSecret(t *testing.T) {
	params := Parameters{N: 5, T: 3}

	secretBuf := make([]byte, 64)
	if _, err := rand.Read(secretBuf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	secret, err := ristretto255.NewScalar().SetUniformBytes(secretBuf)
	if err != nil {
		t.Fatalf("SetUniformBytes: %v", err)
	}

	shares, err := testutils.GenerateKeyShares(rand.Reader, secret, int(params.N), int(params.T))
	if err != nil {
		t.Fatalf("GenerateKeyShares: %v", err)
	}

	indices := []ParticipantIndex{1, 3, 5}
	sum := zeroScalar()
	for _, i := range indices {
		lambda := lagrangeCoefficient(i, indices)
		sum = addScalars(sum, mulScalars(lambda, shares[i-1]))
	}

	testutils.AssertScalarsEqual(t, "reconstructed secret", secret, sum)
}
