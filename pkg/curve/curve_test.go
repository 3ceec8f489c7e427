package curve

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsStable(t *testing.T) {
	a := Default()
	b := Default()
	require.Same(t, a, b, "Default must return the same singleton across calls")
}

func TestHIsNotIdentityOrGenerator(t *testing.T) {
	ctx := Default()
	h := ctx.H()
	h.ToAffine()

	require.False(t, h.X.IsZero() && h.Y.IsZero(), "H must not be the point at infinity")

	g := ctx.G()
	g.ToAffine()
	require.False(t, h.X.Equals(&g.X) && h.Y.Equals(&g.Y), "H must differ from G")
}

func TestHIsOnCurve(t *testing.T) {
	h := Default().H()
	h.ToAffine()

	// A point recovered by SEC-1 compression round-trips only if it lies
	// on the curve: ParsePubKey validates that internally.
	pub := secp256k1.NewPublicKey(&h.X, &h.Y)
	_, err := secp256k1.ParsePubKey(pub.SerializeCompressed())
	require.NoError(t, err)
}
