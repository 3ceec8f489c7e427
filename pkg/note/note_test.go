package note

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

var (
	testToken = ids.TokenID{Shard: 0, Realm: 0, Num: 1}
	testOwner = ids.AccountID{Shard: 0, Realm: 0, Num: 2}
)

func TestKnownRejectsEmptyCommitment(t *testing.T) {
	_, err := Known(testToken, testOwner, nil, make([]byte, 32), 10)
	require.ErrorIs(t, err, ErrInvalidNote)
}

func TestKnownRejectsWrongBlindingLength(t *testing.T) {
	_, err := Known(testToken, testOwner, []byte{0x02}, make([]byte, 16), 10)
	require.ErrorIs(t, err, ErrInvalidNote)
}

func TestKnownRejectsNegativeValue(t *testing.T) {
	_, err := Known(testToken, testOwner, []byte{0x02}, make([]byte, 32), -5)
	require.ErrorIs(t, err, ErrInvalidNote)
}

func TestKnownReportsValueKnown(t *testing.T) {
	n, err := Known(testToken, testOwner, []byte{0x02}, make([]byte, 32), 10)
	require.NoError(t, err)
	require.True(t, n.ValueKnown())
}

func TestExternalReportsValueUnknown(t *testing.T) {
	n, err := External(testToken, testOwner, []byte{0x02})
	require.NoError(t, err)
	require.False(t, n.ValueKnown())
	require.Equal(t, ValueUnknown, n.Value)
	require.Nil(t, n.Blinding)
}

func TestExternalRejectsEmptyCommitment(t *testing.T) {
	_, err := External(testToken, testOwner, nil)
	require.ErrorIs(t, err, ErrInvalidNote)
}
