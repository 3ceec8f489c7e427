// Package token models the token and token-relation records the handler
// consults. spec.md describes these only by the interfaces the core uses
// (WritableTokenStore.getIfUsable, WritableTokenRelationStore.getIfUsable);
// this package supplies those interfaces plus a minimal in-memory
// implementation so the handler is exercisable standalone.
package token

import (
	"errors"
	"sync"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
)

// Type enumerates the token types the host framework might report. This
// module's handler accepts only FungiblePrivate (spec.md §4.E step 1).
type Type int

const (
	Unspecified Type = iota
	FungiblePrivate
	FungiblePublic
	NonFungible
)

// Token is the subset of token state the private-transfer handler reads:
// its type, and whether it has a KYC key configured.
type Token struct {
	ID     ids.TokenID
	Type   Type
	KYCKey bool
}

// Relation is the subset of a (account, token) association the handler
// reads: whether KYC has been granted.
type Relation struct {
	KYCGranted bool
}

// ErrNotFound is returned by GetIfUsable when no record exists for the
// given key. The handler maps it to TOKEN_NOT_ASSOCIATED_TO_ACCOUNT (for
// relations) or to INVALID_TRANSACTION_BODY (for tokens).
var ErrNotFound = errors.New("token: not found")

// Store resolves a token by id.
//
// Corresponds to: WritableTokenStore.getIfUsable (external collaborator,
// spec.md §6).
type Store interface {
	GetIfUsable(id ids.TokenID) (Token, error)
}

// RelationStore resolves an account's association with a token.
//
// Corresponds to: WritableTokenRelationStore.getIfUsable (external
// collaborator, spec.md §6).
type RelationStore interface {
	GetIfUsable(account ids.AccountID, token ids.TokenID) (Relation, error)
}

// InMemoryStore is a concurrency-safe Store backed by a map, for tests and
// the CLI demo.
type InMemoryStore struct {
	mu     sync.RWMutex
	tokens map[ids.TokenID]Token
}

// NewInMemoryStore constructs an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tokens: make(map[ids.TokenID]Token)}
}

// Put registers or replaces a token record.
func (s *InMemoryStore) Put(t Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.ID] = t
}

// GetIfUsable implements Store.
func (s *InMemoryStore) GetIfUsable(id ids.TokenID) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[id]
	if !ok {
		return Token{}, ErrNotFound
	}
	return t, nil
}

// InMemoryRelationStore is a concurrency-safe RelationStore backed by a map.
type InMemoryRelationStore struct {
	mu        sync.RWMutex
	relations map[relationKey]Relation
}

type relationKey struct {
	account ids.AccountID
	token   ids.TokenID
}

// NewInMemoryRelationStore constructs an empty InMemoryRelationStore.
func NewInMemoryRelationStore() *InMemoryRelationStore {
	return &InMemoryRelationStore{relations: make(map[relationKey]Relation)}
}

// Put registers or replaces an (account, token) association.
func (s *InMemoryRelationStore) Put(account ids.AccountID, token ids.TokenID, r Relation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relations[relationKey{account, token}] = r
}

// GetIfUsable implements RelationStore.
func (s *InMemoryRelationStore) GetIfUsable(account ids.AccountID, token ids.TokenID) (Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relations[relationKey{account, token}]
	if !ok {
		return Relation{}, ErrNotFound
	}
	return r, nil
}
