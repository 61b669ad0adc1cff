package document

// Handle addresses a cell inside a Document's arena. Handles stay valid
// until the cell is deleted; after that the slot may be recycled.
type Handle int32

// NilHandle marks the absence of a cell.
const NilHandle Handle = -1

// DefaultMaxLength is the import bound used when no limit is configured.
const DefaultMaxLength = 65536 * 2

type cell struct {
	value byte
	prev  Handle
	next  Handle
	live  bool
}

// Document is an ordered, capacity-bounded byte sequence stored as a
// doubly linked list inside an arena. Every mutating call rebuilds the
// position index before returning, so Index lookups always reflect the
// latest mutation.
type Document struct {
	cells  []cell
	free   []Handle
	head   Handle
	tail   Handle
	length int
	max    int
	index  Index
}

// New returns an empty document that holds at most limit bytes.
// A non-positive limit falls back to DefaultMaxLength.
func New(limit int) *Document {
	if limit <= 0 {
		limit = DefaultMaxLength
	}
	return &Document{
		head: NilHandle,
		tail: NilHandle,
		max:  limit,
	}
}

// Len returns the number of live cells.
func (d *Document) Len() int {
	return d.length
}

// Cap returns the maximum number of cells the document accepts.
func (d *Document) Cap() int {
	return d.max
}

// Index returns the position index. It is owned by the document and must
// not be modified.
func (d *Document) Index() *Index {
	return &d.index
}

// Load replaces the contents with data. Bytes past Cap are dropped and
// truncated reports whether that happened.
func (d *Document) Load(data []byte) (truncated bool) {
	d.clear()
	if len(data) > d.max {
		data = data[:d.max]
		truncated = true
	}
	d.cells = make([]cell, 0, len(data))
	for _, b := range data {
		d.link(d.alloc(b), d.tail, NilHandle)
	}
	d.index.rebuild(d)
	return truncated
}

// InsertAt creates a cell holding value next to the cell at pos: before it
// when before is set, after it otherwise. On an empty document pos is
// ignored and the new cell becomes the only one. It reports false when the
// document is full or pos does not name a cell.
func (d *Document) InsertAt(pos int, value byte, before bool) bool {
	if d.length >= d.max {
		return false
	}
	if d.length == 0 {
		d.link(d.alloc(value), NilHandle, NilHandle)
		d.index.rebuild(d)
		return true
	}
	at := d.index.Lookup(pos)
	if !d.valid(at) {
		return false
	}
	h := d.alloc(value)
	if before {
		d.link(h, d.cells[at].prev, at)
	} else {
		d.link(h, at, d.cells[at].next)
	}
	d.index.rebuild(d)
	return true
}

// DeleteAt removes the cell at pos. An invalid position is a no-op.
func (d *Document) DeleteAt(pos int) bool {
	h := d.index.Lookup(pos)
	if !d.valid(h) {
		return false
	}
	d.unlink(h)
	d.index.rebuild(d)
	return true
}

// DeleteAll removes every cell, head first.
func (d *Document) DeleteAll() {
	for d.head != NilHandle {
		d.unlink(d.head)
	}
	d.index.rebuild(d)
}

// Get returns the byte at pos; ok is false when pos is out of range.
func (d *Document) Get(pos int) (value byte, ok bool) {
	h := d.index.Lookup(pos)
	if !d.valid(h) {
		return 0, false
	}
	return d.cells[h].value, true
}

// Set overwrites the byte at pos without changing the length.
func (d *Document) Set(pos int, value byte) bool {
	h := d.index.Lookup(pos)
	if !d.valid(h) {
		return false
	}
	d.cells[h].value = value
	return true
}

// Value returns the byte stored in the cell addressed by h.
func (d *Document) Value(h Handle) (byte, bool) {
	if !d.valid(h) {
		return 0, false
	}
	return d.cells[h].value, true
}

// Bytes serializes the document in order into a new buffer.
func (d *Document) Bytes() []byte {
	out := make([]byte, 0, d.length)
	for h := d.head; h != NilHandle; h = d.cells[h].next {
		out = append(out, d.cells[h].value)
	}
	return out
}

func (d *Document) valid(h Handle) bool {
	return h >= 0 && int(h) < len(d.cells) && d.cells[h].live
}

func (d *Document) alloc(value byte) Handle {
	c := cell{value: value, prev: NilHandle, next: NilHandle, live: true}
	if n := len(d.free); n > 0 {
		h := d.free[n-1]
		d.free = d.free[:n-1]
		d.cells[h] = c
		return h
	}
	d.cells = append(d.cells, c)
	return Handle(len(d.cells) - 1)
}

// link places h between prev and next, which must be adjacent (or nil).
func (d *Document) link(h, prev, next Handle) {
	d.cells[h].prev = prev
	d.cells[h].next = next
	if prev != NilHandle {
		d.cells[prev].next = h
	} else {
		d.head = h
	}
	if next != NilHandle {
		d.cells[next].prev = h
	} else {
		d.tail = h
	}
	d.length++
}

func (d *Document) unlink(h Handle) {
	c := d.cells[h]
	if c.prev != NilHandle {
		d.cells[c.prev].next = c.next
	} else {
		d.head = c.next
	}
	if c.next != NilHandle {
		d.cells[c.next].prev = c.prev
	} else {
		d.tail = c.prev
	}
	d.cells[h] = cell{prev: NilHandle, next: NilHandle}
	d.free = append(d.free, h)
	d.length--
}

// clear drops the arena wholesale; used before a reload.
func (d *Document) clear() {
	d.cells = nil
	d.free = nil
	d.head = NilHandle
	d.tail = NilHandle
	d.length = 0
}
