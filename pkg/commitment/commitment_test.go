package commitment

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

// balanceScalar returns Σpositive - Σnegative mod n, the blinding factor that
// makes the negative side plus the result sum to the positive side: SumsMatch
// only holds when the
// input and output blinding factors themselves sum equal, not merely when
// the values do (the commitment is homomorphic over r as well as v).
func balanceScalar(t *testing.T, positive, negative [][]byte) []byte {
	t.Helper()
	var sum secp256k1.ModNScalar
	for _, b := range positive {
		var r secp256k1.ModNScalar
		require.False(t, r.SetByteSlice(b))
		sum.Add(&r)
	}
	for _, b := range negative {
		var r secp256k1.ModNScalar
		require.False(t, r.SetByteSlice(b))
		r.Negate()
		sum.Add(&r)
	}
	out := sum.Bytes()
	return out[:]
}

var (
	testToken = ids.TokenID{Shard: 0, Realm: 0, Num: 100}
	testOwner = ids.AccountID{Shard: 0, Realm: 0, Num: 200}
)

func TestNewTreasuryNoteRejectsNegativeValue(t *testing.T) {
	_, err := NewTreasuryNote(testToken, testOwner, -1)
	require.ErrorIs(t, err, ErrNegativeValue)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n, err := NewTreasuryNote(testToken, testOwner, 500)
	require.NoError(t, err)

	p, err := Decode(n.Commitment)
	require.NoError(t, err)

	require.Equal(t, n.Commitment, Encode(p))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, ErrInvalidCommitment)
}

func TestSumsMatchHoldsForConservedTransfer(t *testing.T) {
	in1, err := NewTreasuryNote(testToken, testOwner, 300)
	require.NoError(t, err)
	in2, err := NewTreasuryNote(testToken, testOwner, 200)
	require.NoError(t, err)

	out1, err := NewTreasuryNote(testToken, testOwner, 450)
	require.NoError(t, err)

	out2Blinding := balanceScalar(t, [][]byte{in1.Blinding, in2.Blinding}, [][]byte{out1.Blinding})
	out2, err := RecoverNote(testToken, testOwner, 50, out2Blinding)
	require.NoError(t, err)

	matches, err := SumsMatch(
		[][]byte{in1.Commitment, in2.Commitment},
		[][]byte{out1.Commitment, out2.Commitment},
	)
	require.NoError(t, err)
	require.True(t, matches, "500 in, 500 out with balanced blinding factors must sum-match")
}

func TestSumsMatchRejectsImbalancedTransfer(t *testing.T) {
	in, err := NewTreasuryNote(testToken, testOwner, 500)
	require.NoError(t, err)
	out, err := NewTreasuryNote(testToken, testOwner, 400)
	require.NoError(t, err)

	matches, err := SumsMatch([][]byte{in.Commitment}, [][]byte{out.Commitment})
	require.NoError(t, err)
	require.False(t, matches)
}

func TestSumsMatchEmptyBothSides(t *testing.T) {
	matches, err := SumsMatch(nil, nil)
	require.NoError(t, err)
	require.True(t, matches)
}

func TestRecoverNoteReproducesCommitment(t *testing.T) {
	n, err := NewTreasuryNote(testToken, testOwner, 42)
	require.NoError(t, err)

	recovered, err := RecoverNote(testToken, testOwner, n.Value, n.Blinding)
	require.NoError(t, err)
	require.Equal(t, n.Commitment, recovered.Commitment)
}
