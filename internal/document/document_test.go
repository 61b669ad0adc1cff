package document

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, data ...byte) *Document {
	t.Helper()
	d := New(0)
	require.False(t, d.Load(data))
	return d
}

func requireIndexed(t *testing.T, d *Document) {
	t.Helper()
	ix := d.Index()
	require.Equal(t, d.Len(), ix.Len())
	want := d.Bytes()
	for i := range want {
		v, ok := d.Value(ix.Lookup(i))
		require.True(t, ok, "position %d", i)
		require.Equal(t, want[i], v, "position %d", i)
	}
	require.Equal(t, NilHandle, ix.Lookup(d.Len()))
}

func TestLoadAndBytes(t *testing.T) {
	d := loaded(t, 0x41, 0x42, 0x43)
	require.Equal(t, 3, d.Len())
	require.Equal(t, []byte{0x41, 0x42, 0x43}, d.Bytes())
	requireIndexed(t, d)
}

func TestLoadTruncatesAtCapacity(t *testing.T) {
	d := New(4)
	truncated := d.Load([]byte{1, 2, 3, 4, 5, 6})
	require.True(t, truncated)
	require.Equal(t, []byte{1, 2, 3, 4}, d.Bytes())
	require.False(t, d.InsertAt(0, 9, true), "insert past capacity must be refused")
	require.Equal(t, 4, d.Len())
}

func TestLoadReplacesPreviousContents(t *testing.T) {
	d := loaded(t, 1, 2, 3)
	d.Load([]byte{7})
	require.Equal(t, []byte{7}, d.Bytes())
	requireIndexed(t, d)
}

func TestInsertBeforeHead(t *testing.T) {
	d := loaded(t, 0x41, 0x42, 0x43)
	require.True(t, d.InsertAt(0, 0x00, true))
	require.Equal(t, []byte{0x00, 0x41, 0x42, 0x43}, d.Bytes())
	requireIndexed(t, d)
}

func TestInsertAfterTail(t *testing.T) {
	d := loaded(t, 0x41, 0x42)
	require.True(t, d.InsertAt(1, 0xFF, false))
	require.Equal(t, []byte{0x41, 0x42, 0xFF}, d.Bytes())
	require.True(t, d.InsertAt(0, 0x10, false))
	require.Equal(t, []byte{0x41, 0x10, 0x42, 0xFF}, d.Bytes())
	requireIndexed(t, d)
}

func TestInsertIntoEmptyIgnoresPosition(t *testing.T) {
	d := New(0)
	require.True(t, d.InsertAt(17, 0x5A, false))
	require.Equal(t, []byte{0x5A}, d.Bytes())
	requireIndexed(t, d)
}

func TestInsertInvalidPositionIsNoOp(t *testing.T) {
	d := loaded(t, 1, 2)
	require.False(t, d.InsertAt(5, 9, false))
	require.False(t, d.InsertAt(-1, 9, true))
	require.Equal(t, []byte{1, 2}, d.Bytes())
}

func TestDeleteAt(t *testing.T) {
	d := loaded(t, 1, 2, 3, 4)
	require.True(t, d.DeleteAt(1))
	require.Equal(t, []byte{1, 3, 4}, d.Bytes())
	require.True(t, d.DeleteAt(2))
	require.Equal(t, []byte{1, 3}, d.Bytes())
	require.True(t, d.DeleteAt(0))
	require.Equal(t, []byte{3}, d.Bytes())
	requireIndexed(t, d)
}

func TestDeleteLastCellEmptiesDocument(t *testing.T) {
	d := loaded(t, 9)
	require.True(t, d.DeleteAt(0))
	require.Equal(t, 0, d.Len())
	require.Empty(t, d.Bytes())
	require.Equal(t, 0, d.Index().Len())
	require.False(t, d.DeleteAt(0))
}

func TestDeleteAll(t *testing.T) {
	d := loaded(t, 1, 2, 3)
	d.DeleteAll()
	require.Equal(t, 0, d.Len())
	require.Equal(t, NilHandle, d.Index().Lookup(0))
}

func TestGetSet(t *testing.T) {
	d := loaded(t, 1, 2)
	v, ok := d.Get(1)
	require.True(t, ok)
	require.Equal(t, byte(2), v)
	_, ok = d.Get(2)
	require.False(t, ok)

	require.True(t, d.Set(0, 0xAB))
	require.False(t, d.Set(2, 0xAB))
	require.Equal(t, []byte{0xAB, 2}, d.Bytes())
	require.Equal(t, 2, d.Len())
}

func TestFreedHandlesAreRecycled(t *testing.T) {
	d := loaded(t, 1, 2, 3)
	gone := d.Index().Lookup(1)
	require.True(t, d.DeleteAt(1))
	_, ok := d.Value(gone)
	require.False(t, ok, "deleted handle must not dereference")
	require.True(t, d.InsertAt(0, 8, false))
	require.Equal(t, gone, d.Index().Lookup(1))
	require.Len(t, d.cells, 3)
}

func TestIndexRebuildIdempotent(t *testing.T) {
	d := loaded(t, 5, 6, 7)
	d.InsertAt(1, 0, true)
	before := append([]Handle(nil), d.index.handles...)
	d.index.rebuild(d)
	d.index.rebuild(d)
	require.Equal(t, before, d.index.handles)
}

func TestIndexShrinkMarksStaleSlotsNil(t *testing.T) {
	d := loaded(t, 5, 6, 7)
	require.True(t, d.DeleteAt(2))
	require.True(t, d.DeleteAt(0))
	require.Equal(t, 1, d.index.Len())
	stale := d.index.handles[1:3]
	require.Equal(t, []Handle{NilHandle, NilHandle}, stale)
}

func TestLengthTracksInsertsAndDeletes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := New(64)
	d.Load(make([]byte, 10))
	inserts, deletes := 0, 0
	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			if d.InsertAt(rng.Intn(d.Len()+1), byte(i), rng.Intn(2) == 0) {
				inserts++
			}
		} else if d.DeleteAt(rng.Intn(d.Len() + 1)) {
			deletes++
		}
		require.LessOrEqual(t, d.Len(), d.Cap())
	}
	require.Equal(t, 10+inserts-deletes, d.Len())
	requireIndexed(t, d)
}
