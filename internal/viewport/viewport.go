package viewport

// NoCursor is the cursor value of an empty document.
const NoCursor = -1

// DefaultColumns is the number of bytes shown per row-band.
const DefaultColumns = 12

// Viewport tracks the cursor and the visible window of row-bands over a
// document of a given length. Row is the cursor's row on screen and Offset
// is the first visible row-band, so cursor/Columns == Offset+Row holds
// after every transition.
type Viewport struct {
	cursor  int
	row     int
	offset  int
	columns int
	rows    int
	length  int
}

// New returns a viewport with the cursor on the first cell of a document of
// the given length.
func New(columns, visibleRows, length int) *Viewport {
	if columns < 1 {
		columns = DefaultColumns
	}
	v := &Viewport{columns: columns}
	v.rows = max(visibleRows, 1)
	v.Reset(length)
	return v
}

func (v *Viewport) Cursor() int      { return v.cursor }
func (v *Viewport) Row() int         { return v.row }
func (v *Viewport) Offset() int      { return v.offset }
func (v *Viewport) Columns() int     { return v.columns }
func (v *Viewport) VisibleRows() int { return v.rows }

// Bands returns the number of row-bands needed for the document.
func (v *Viewport) Bands() int {
	return (v.length + v.columns - 1) / v.columns
}

// Reset puts the cursor on the first cell and scrolls to the top.
func (v *Viewport) Reset(length int) {
	v.length = length
	v.row = 0
	v.offset = 0
	v.cursor = 0
	if length == 0 {
		v.cursor = NoCursor
	}
}

// JumpStart moves the cursor to the first cell.
func (v *Viewport) JumpStart() {
	v.Reset(v.length)
}

// StepCursor moves the cursor one cell forward (delta > 0) or back
// (delta < 0). Moves past either end are ignored.
func (v *Viewport) StepCursor(delta int) {
	switch {
	case delta > 0 && v.cursor+1 < v.length:
		v.cursor++
		if v.cursor%v.columns == 0 {
			v.advance()
		}
	case delta < 0 && v.cursor-1 >= 0:
		v.cursor--
		if v.cursor%v.columns == v.columns-1 {
			v.retreat()
		}
	}
}

// StepRow moves the cursor one row-band forward or back. Forward lands on
// the last cell when less than a full band remains.
func (v *Viewport) StepRow(delta int) {
	if v.length == 0 {
		return
	}
	band := v.cursor / v.columns
	switch {
	case delta > 0:
		if v.cursor+v.columns < v.length {
			v.cursor += v.columns
		} else {
			v.cursor = v.length - 1
		}
		if v.cursor/v.columns > band {
			v.advance()
		}
	case delta < 0:
		if v.cursor >= v.columns {
			v.cursor -= v.columns
			v.retreat()
		}
	}
}

// LengthChanged re-clamps the cursor after an insert or delete. Growth
// steps the cursor forward and shrinkage steps it back; this keeps the
// cursor on its original cell after an insert-before and pulls it back in
// range after deleting the last cell.
func (v *Viewport) LengthChanged(length int) {
	prev := v.length
	v.length = length
	switch {
	case length == 0:
		v.Reset(0)
	case prev == 0:
		v.Reset(length)
	case length > prev:
		v.StepCursor(1)
	case length < prev:
		v.StepCursor(-1)
	}
}

// Resize sets the number of visible rows, scrolling so the cursor's row
// stays on screen.
func (v *Viewport) Resize(visibleRows int) {
	v.rows = max(visibleRows, 1)
	if v.row >= v.rows {
		v.offset += v.row - (v.rows - 1)
		v.row = v.rows - 1
	}
}

// advance reveals the next band inside the window when there is room,
// otherwise scrolls the window by one band.
func (v *Viewport) advance() {
	if v.row < v.rows-1 && v.row < v.Bands()-1 {
		v.row++
		return
	}
	v.offset++
}

func (v *Viewport) retreat() {
	if v.row > 0 {
		v.row--
		return
	}
	if v.offset > 0 {
		v.offset--
	}
}
