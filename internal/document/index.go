package document

// Index maps document positions to cell handles. It is derived state: the
// owning Document rebuilds it from scratch after each structural change
// and never patches it in place.
type Index struct {
	handles []Handle
}

// Len returns the number of indexed positions.
func (ix *Index) Len() int {
	return len(ix.handles)
}

// Lookup returns the handle of the cell at pos, or NilHandle.
func (ix *Index) Lookup(pos int) Handle {
	if pos < 0 || pos >= len(ix.handles) {
		return NilHandle
	}
	return ix.handles[pos]
}

func (ix *Index) rebuild(d *Document) {
	old := len(ix.handles)
	ix.handles = ix.handles[:0]
	for h := d.head; h != NilHandle; h = d.cells[h].next {
		ix.handles = append(ix.handles, h)
	}
	if n := len(ix.handles); n < old {
		stale := ix.handles[n:old]
		for i := range stale {
			stale[i] = NilHandle
		}
	}
}
