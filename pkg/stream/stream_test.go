package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hederalabs/private-token-transfer/pkg/token"
)

func TestBuilderFinish(t *testing.T) {
	digest := [32]byte{0x01, 0x02}
	record := NewBuilder().TokenType(token.FungiblePrivate).Digest(digest).Finish()

	require.Equal(t, token.FungiblePrivate, record.TokenType)
	require.Equal(t, digest, record.Digest)
}

func TestBuilderDefaultsToZeroValue(t *testing.T) {
	record := NewBuilder().Finish()
	require.Equal(t, token.Unspecified, record.TokenType)
	require.Equal(t, [32]byte{}, record.Digest)
}
