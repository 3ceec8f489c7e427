package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

var (
	testToken   = ids.TokenID{Shard: 0, Realm: 0, Num: 1}
	testAccount = ids.AccountID{Shard: 0, Realm: 0, Num: 2}
)

func TestInMemoryStoreGetIfUsable(t *testing.T) {
	s := NewInMemoryStore()
	s.Put(Token{ID: testToken, Type: FungiblePrivate, KYCKey: true})

	got, err := s.GetIfUsable(testToken)
	require.NoError(t, err)
	require.Equal(t, FungiblePrivate, got.Type)
}

func TestInMemoryStoreMissingReturnsErrNotFound(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.GetIfUsable(testToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryRelationStoreGetIfUsable(t *testing.T) {
	s := NewInMemoryRelationStore()
	s.Put(testAccount, testToken, Relation{KYCGranted: true})

	got, err := s.GetIfUsable(testAccount, testToken)
	require.NoError(t, err)
	require.True(t, got.KYCGranted)
}

func TestInMemoryRelationStoreMissingReturnsErrNotFound(t *testing.T) {
	s := NewInMemoryRelationStore()
	_, err := s.GetIfUsable(testAccount, testToken)
	require.ErrorIs(t, err, ErrNotFound)
}
