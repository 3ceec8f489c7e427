package registry

import (
	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
	"github.com/hederalabs/private-token-transfer/pkg/wire"
)

// Snapshot serializes the full registry contents to the wire envelope
// format, for host checkpointing (spec.md §4.D).
func (r *Registry) Snapshot() []byte {
	notes := r.All()
	entries := make([]wire.SnapshotNote, len(notes))
	for i, n := range notes {
		entries[i] = wire.SnapshotNote{
			TokenShard: n.TokenID.Shard,
			TokenRealm: n.TokenID.Realm,
			TokenNum:   n.TokenID.Num,
			OwnerShard: n.Owner.Shard,
			OwnerRealm: n.Owner.Realm,
			OwnerNum:   n.Owner.Num,
			Commitment: n.Commitment,
			Blinding:   n.Blinding,
			Value:      n.Value,
		}
	}
	return wire.EncodeSnapshot(entries)
}

// Restore replaces the registry's contents with a previously-serialized
// snapshot. It does not merge: any entries present before the call are
// discarded.
func (r *Registry) Restore(data []byte) error {
	entries, err := wire.DecodeSnapshot(data)
	if err != nil {
		return err
	}

	fresh := make(map[ids.TokenID]map[string]note.Note)
	for _, e := range entries {
		tokenID := ids.TokenID{Shard: e.TokenShard, Realm: e.TokenRealm, Num: e.TokenNum}
		owner := ids.AccountID{Shard: e.OwnerShard, Realm: e.OwnerRealm, Num: e.OwnerNum}

		var n note.Note
		var err error
		if e.Value == note.ValueUnknown {
			n, err = note.External(tokenID, owner, e.Commitment)
		} else {
			n, err = note.Known(tokenID, owner, e.Commitment, e.Blinding, e.Value)
		}
		if err != nil {
			return err
		}

		bucket, ok := fresh[tokenID]
		if !ok {
			bucket = make(map[string]note.Note)
			fresh[tokenID] = bucket
		}
		bucket[string(n.Commitment)] = n
	}

	r.mu.Lock()
	r.notes = fresh
	r.mu.Unlock()

	return nil
}
