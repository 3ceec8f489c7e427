package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
)

var (
	testToken = ids.TokenID{Shard: 0, Realm: 0, Num: 1}
	testOwner = ids.AccountID{Shard: 0, Realm: 0, Num: 2}
)

func mustNote(t *testing.T, commitment byte, value int64) note.Note {
	t.Helper()
	n, err := note.Known(testToken, testOwner, []byte{commitment}, make([]byte, 32), value)
	require.NoError(t, err)
	return n
}

func TestPutThenGet(t *testing.T) {
	r := New()
	n := mustNote(t, 0x01, 100)
	r.Put(n)

	got, found := r.Get(testToken, n.Commitment)
	require.True(t, found)
	require.Equal(t, n, got)
}

func TestGetMissingReturnsFalse(t *testing.T) {
	r := New()
	_, found := r.Get(testToken, []byte{0x99})
	require.False(t, found)
}

func TestRemoveDeletesEntry(t *testing.T) {
	r := New()
	n := mustNote(t, 0x01, 100)
	r.Put(n)

	removed, ok := r.Remove(testToken, n.Commitment)
	require.True(t, ok)
	require.Equal(t, n, removed)

	_, found := r.Get(testToken, n.Commitment)
	require.False(t, found)
}

func TestRemoveMissingReturnsFalse(t *testing.T) {
	r := New()
	_, ok := r.Remove(testToken, []byte{0x01})
	require.False(t, ok)
}

func TestTwoRegistriesAreIndependent(t *testing.T) {
	r1 := New()
	r2 := New()
	r1.Put(mustNote(t, 0x01, 5))

	_, found := r2.Get(testToken, []byte{0x01})
	require.False(t, found, "registries constructed with New() must not share state")
}

func TestAllReturnsEveryNote(t *testing.T) {
	r := New()
	r.Put(mustNote(t, 0x01, 5))
	r.Put(mustNote(t, 0x02, 10))
	require.Len(t, r.All(), 2)
}

func TestConcurrentPutGet(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n := mustNote(t, byte(i), int64(i))
			r.Put(n)
			r.Get(testToken, n.Commitment)
		}(i)
	}
	wg.Wait()
	require.Len(t, r.All(), 50)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	r := New()
	r.Put(mustNote(t, 0x01, 5))
	r.Put(mustNote(t, 0x02, 10))

	data := r.Snapshot()

	restored := New()
	require.NoError(t, restored.Restore(data))
	require.ElementsMatch(t, r.All(), restored.All())
}
