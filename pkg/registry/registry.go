// Package registry implements the process-wide (or, here, per-host-instance)
// commitment registry: an authoritative mapping of (tokenId, commitment) to
// the note occupying that slot, with single-use consume semantics.
//
// Corresponds to:
// com.hedera.node.app.service.token.impl.privacy.PrivateCommitmentRegistry
//
// spec.md §9 offers the "explicitly constructed object" re-architecture of
// the Java singleton; this package takes that option directly — Registry is
// constructed with New(), not held behind package-level state, so tests get
// isolation by construction instead of a shared Clear().
package registry

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
)

// Registry is a concurrency-safe mapping tokenId -> commitment bytes -> Note.
// Individual operations are linearizable; composite check-then-consume
// sequences are not atomic at this layer (spec.md §4.D, §5) — callers that
// need that atomicity (the handler) must serialize their own critical
// section around Get/Remove/Put.
type Registry struct {
	mu    sync.RWMutex
	notes map[ids.TokenID]map[string]note.Note
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{notes: make(map[ids.TokenID]map[string]note.Note)}
}

// Put inserts or overwrites the entry at (note.TokenID, note.Commitment).
func (r *Registry) Put(n note.Note) {
	key := string(n.Commitment)

	r.mu.Lock()
	bucket, ok := r.notes[n.TokenID]
	if !ok {
		bucket = make(map[string]note.Note)
		r.notes[n.TokenID] = bucket
	}
	bucket[key] = n
	r.mu.Unlock()

	log.Info().
		Str("token", n.TokenID.String()).
		Str("owner", n.Owner.String()).
		Str("commitment", hexString(n.Commitment)).
		Msg("stored private commitment")
}

// Get returns the note at (tokenID, commitment) and whether it was found.
func (r *Registry) Get(tokenID ids.TokenID, commitment []byte) (note.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, ok := r.notes[tokenID]
	if !ok {
		return note.Note{}, false
	}
	n, ok := bucket[string(commitment)]
	return n, ok
}

// Remove deletes and returns the entry at (tokenID, commitment), or reports
// not found. When the inner mapping becomes empty, the outer entry is
// dropped too.
func (r *Registry) Remove(tokenID ids.TokenID, commitment []byte) (note.Note, bool) {
	key := string(commitment)

	r.mu.Lock()
	bucket, ok := r.notes[tokenID]
	if !ok {
		r.mu.Unlock()
		return note.Note{}, false
	}
	n, ok := bucket[key]
	if ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(r.notes, tokenID)
		}
	}
	r.mu.Unlock()

	if ok {
		log.Info().
			Str("token", tokenID.String()).
			Str("commitment", hexString(commitment)).
			Msg("removed private commitment")
	}
	return n, ok
}

// Clear removes all entries. Intended for test isolation only.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = make(map[ids.TokenID]map[string]note.Note)
}

// All returns every note currently held, in no particular order. Used by
// Snapshot (see snapshot.go) and by diagnostic CLI commands.
func (r *Registry) All() []note.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []note.Note
	for _, bucket := range r.notes {
		for _, n := range bucket {
			out = append(out, n)
		}
	}
	return out
}

func hexString(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0xf]
	}
	return string(out)
}
