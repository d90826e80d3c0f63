package testutils

import (
	"io"

	"github.com/gtank/ristretto255"
)

// GenerateKeyShares generates secret key shares of the given secret key for
// a group of the given size with the required signing threshold, bypassing
// a full DKG ceremony. This mirrors the group's original GenerateKeyShares
// helper, reimplemented over ristretto255.Scalar mod the group order
// instead of math/big.Int mod a named prime, for tests that only need a
// consistent (group key, shares) pair rather than a full ceremony.
//
// Evaluation points are encoded exactly the way the package's own
// scalarFromIndex does (a little-endian uint16 zero-padded to 32 bytes),
// so shares produced here interpolate correctly under the package's own
// Lagrange coefficients.
func GenerateKeyShares(
	rng io.Reader,
	secretKey *ristretto255.Scalar,
	groupSize int,
	threshold int,
) ([]*ristretto255.Scalar, error) {
	coefficients, err := generatePolynomial(rng, secretKey, threshold)
	if err != nil {
		return nil, err
	}

	shares := make([]*ristretto255.Scalar, groupSize)
	for i := 0; i < groupSize; i++ {
		shares[i] = calculatePolynomial(coefficients, i+1)
	}

	return shares, nil
}

func generatePolynomial(rng io.Reader, secretKey *ristretto255.Scalar, threshold int) ([]*ristretto255.Scalar, error) {
	coeffs := make([]*ristretto255.Scalar, threshold)
	coeffs[0] = secretKey

	buf := make([]byte, 64)
	for i := 1; i < threshold; i++ {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		c, err := ristretto255.NewScalar().SetUniformBytes(buf)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

func calculatePolynomial(coefficients []*ristretto255.Scalar, x int) *ristretto255.Scalar {
	xScalar := scalarFromInt(x)

	n := len(coefficients)
	result, err := ristretto255.NewScalar().SetCanonicalBytes(coefficients[n-1].Bytes())
	if err != nil {
		panic(err)
	}
	for i := n - 2; i >= 0; i-- {
		result.Multiply(result, xScalar)
		result.Add(result, coefficients[i])
	}
	return result
}

func scalarFromInt(x int) *ristretto255.Scalar {
	var b [32]byte
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}
