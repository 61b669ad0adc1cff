package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Grid geometry, relative to the left edge of the first byte column.
const (
	cellWidth      = 3 // two hex digits and a gap
	labelLeftX     = -6
	markerLeftX    = -9
	labelRightGap  = 1
	markerRightGap = 6
)

// Render draws the visible row-bands and the status line.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.SetStyle(e.styleMain)
	s.Clear()

	rows := h - 1
	cols := e.view.Columns()
	mid := (w - cols*cellWidth) / 2
	length := e.doc.Len()
	bands := e.view.Bands()
	offset := e.view.Offset()
	cursor := e.view.Cursor()
	ix := e.doc.Index()

	for y := 0; y+offset < bands && y < rows; y++ {
		band := y + offset
		label := fmt.Sprintf("%04X", band)
		drawString(s, mid+labelLeftX, y, label, e.styleOffset)
		drawString(s, mid+cols*cellWidth+labelRightGap, y, label, e.styleOffset)
		for j := 0; j < cols; j++ {
			pos := band*cols + j
			if pos >= length {
				break
			}
			v, _ := e.doc.Value(ix.Lookup(pos))
			text, style := fmt.Sprintf("%02X", v), e.styleMain
			if v == 0 {
				text, style = "--", e.styleZero
			}
			if pos == cursor {
				style = e.styleCursor
			}
			drawString(s, mid+j*cellWidth, y, text, style)
		}
	}

	if row := e.view.Row(); row < rows {
		drawString(s, mid+markerLeftX, row, "[[", e.styleMarker)
		drawString(s, mid+cols*cellWidth+markerRightGap, row, "]]", e.styleMarker)
		if length > 0 {
			x := mid + (cursor%cols)*cellWidth
			drawString(s, x-1, row, "[", e.styleCursor)
			drawString(s, x+2, row, "]", e.styleCursor)
		}
	}

	e.renderStatusline(s, w, h-1)
	s.HideCursor()
	s.Show()
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	st := e.Status()
	left := "  " + st.Message
	right := st.Position() + "  "
	if st.Modified {
		right = "* " + right
	}
	drawString(s, 0, y, composeStatusLine(left, right, w), e.styleStatus)
}

func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	rw := runewidth.StringWidth(right)
	if rw >= width {
		return runewidth.Truncate(right, width, "")
	}
	left = runewidth.Truncate(left, width-rw, "")
	return runewidth.FillRight(left, width-rw) + right
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
