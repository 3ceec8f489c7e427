package commitment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackupRoundTrip(t *testing.T) {
	n, err := NewTreasuryNote(testToken, testOwner, 777)
	require.NoError(t, err)

	code, err := EncodeBackup(n)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	tokenID, value, blinding, err := DecodeBackup(code)
	require.NoError(t, err)
	require.Equal(t, testToken, tokenID)
	require.Equal(t, n.Value, value)
	require.Equal(t, n.Blinding, blinding)

	recovered, err := RecoverNote(tokenID, testOwner, value, blinding)
	require.NoError(t, err)
	require.Equal(t, n.Commitment, recovered.Commitment)
}

func TestEncodeBackupRejectsExternalNote(t *testing.T) {
	n, err := NewTreasuryNote(testToken, testOwner, 1)
	require.NoError(t, err)

	// Strip the opening secret to simulate a note received as an output
	// whose blinding factor we never learned.
	n.Blinding = nil
	n.Value = -1

	_, err = EncodeBackup(n)
	require.ErrorIs(t, err, ErrInvalidBackupCode)
}

func TestDecodeBackupRejectsCorruptedChecksum(t *testing.T) {
	n, err := NewTreasuryNote(testToken, testOwner, 1)
	require.NoError(t, err)

	code, err := EncodeBackup(n)
	require.NoError(t, err)

	corrupted := []byte(code)
	corrupted[0]++
	_, _, _, err = DecodeBackup(string(corrupted))
	require.Error(t, err)
}

func TestDecodeBackupRejectsWrongLength(t *testing.T) {
	_, _, _, err := DecodeBackup("not a backup code")
	require.ErrorIs(t, err, ErrInvalidBackupCode)
}
