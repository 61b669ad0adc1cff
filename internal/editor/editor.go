package editor

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/document"
	"github.com/kobzarvs/qhex/internal/hexfile"
	"github.com/kobzarvs/qhex/internal/logger"
	"github.com/kobzarvs/qhex/internal/viewport"
)

const (
	promptSave = "Do you want to save? (y/n)"
	promptQuit = "Are you sure you want to quit? (y/n)"
	msgSaved   = "File saved"
	msgFailed  = "File failed to save"
)

// ConfirmFunc shows prompt and blocks until the user answers. Only an
// affirmative answer returns true.
type ConfirmFunc func(prompt string) bool

// SaveResult tells a written file apart from a declined or failed save.
type SaveResult int

const (
	SaveWritten SaveResult = iota
	SaveDeclined
	SaveFailed
)

func (r SaveResult) String() string {
	switch r {
	case SaveWritten:
		return "written"
	case SaveDeclined:
		return "declined"
	default:
		return "failed"
	}
}

// Status is what the status line shows.
type Status struct {
	Message  string
	Cursor   int
	Length   int
	Modified bool
}

// Position formats cursor and length as fixed-width hex.
func (st Status) Position() string {
	if st.Cursor == viewport.NoCursor {
		return fmt.Sprintf("----/%04X", st.Length)
	}
	return fmt.Sprintf("%04X/%04X", st.Cursor, st.Length)
}

// editState is reset to nibble 0 by any input cycle that made no edit.
type editState struct {
	nibble int
	dirty  bool
}

type Editor struct {
	doc           *document.Document
	view          *viewport.Viewport
	edit          editState
	filename      string
	modified      bool
	statusMessage string
	keymap        map[string]string
	confirmSave   bool
	confirmQuit   bool
	confirm       ConfirmFunc
	actionHook    func(action string)
	styleMain     tcell.Style
	styleStatus   tcell.Style
	styleZero     tcell.Style
	styleCursor   tcell.Style
	styleMarker   tcell.Style
	styleOffset   tcell.Style
}

func New(cfg config.Config) *Editor {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorWhite)
	zeroFg := parseColor(cfg.Theme.ZeroForeground, tcell.ColorGray)
	cursorFg := parseColor(cfg.Theme.CursorForeground, mainFg)
	markerFg := parseColor(cfg.Theme.MarkerForeground, mainFg)
	offsetFg := parseColor(cfg.Theme.OffsetForeground, mainFg)
	base := tcell.StyleDefault.Background(mainBg)
	return &Editor{
		doc:         document.New(document.DefaultMaxLength),
		view:        viewport.New(cfg.Editor.Columns, 1, 0),
		keymap:      keymap,
		confirmSave: config.Enabled(cfg.Editor.ConfirmSave),
		confirmQuit: config.Enabled(cfg.Editor.ConfirmQuit),
		styleMain:   base.Foreground(mainFg),
		styleStatus: tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleZero:   base.Foreground(zeroFg).Dim(true),
		styleCursor: base.Foreground(cursorFg).Bold(true),
		styleMarker: base.Foreground(markerFg),
		styleOffset: base.Foreground(offsetFg),
	}
}

// SetConfirm installs the prompt used by save and quit.
func (e *Editor) SetConfirm(fn ConfirmFunc) {
	e.confirm = fn
}

// OpenFile replaces the document with the contents of path, truncated to
// document.DefaultMaxLength, and puts the cursor on the first byte.
func (e *Editor) OpenFile(path string) error {
	data, truncated, err := hexfile.Read(path, e.doc.Cap())
	if err != nil {
		return err
	}
	e.doc.Load(data)
	if truncated {
		logger.Warn("file truncated to document limit", "path", path, "limit", humanize.Bytes(uint64(e.doc.Cap())))
	}
	e.view.Reset(e.doc.Len())
	e.filename = path
	e.modified = false
	e.edit = editState{}
	e.statusMessage = path
	logger.Info("file opened", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

// Probe writes the document back to its file without asking, to find out
// early whether saving will be possible.
func (e *Editor) Probe() error {
	if e.filename == "" {
		return errors.New("no file name")
	}
	return hexfile.Write(e.filename, e.doc.Bytes())
}

// Save writes the document to its file, asking first when confirm is set.
func (e *Editor) Save(confirm bool) SaveResult {
	if confirm && !e.ask(promptSave) {
		e.setStatus("")
		return SaveDeclined
	}
	if err := e.Probe(); err != nil {
		logger.Warn("save failed", "path", e.filename, "err", err)
		e.setStatus(msgFailed)
		return SaveFailed
	}
	e.modified = false
	e.setStatus(msgSaved)
	logger.Debug("file saved", "path", e.filename, "size", humanize.Bytes(uint64(e.doc.Len())))
	return SaveWritten
}

// Close frees the document.
func (e *Editor) Close() {
	e.doc.DeleteAll()
}

// HandleKey runs one input cycle for ev and reports whether the editor
// should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.edit.dirty = false
	quit := e.dispatch(ev)
	e.endCycle()
	return quit
}

// Resize adapts the viewport to a terminal h lines tall; the last line is
// the status line.
func (e *Editor) Resize(h int) {
	e.edit.dirty = false
	e.view.Resize(h - 1)
	e.setStatus(e.filename)
	e.endCycle()
}

func (e *Editor) dispatch(ev *tcell.EventKey) bool {
	if action, ok := e.keymap[keyString(ev)]; ok {
		return e.execAction(action)
	}
	if ev.Key() == tcell.KeyRune {
		if d, ok := hexDigit(ev.Rune()); ok {
			e.writeNibble(d)
		}
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case "move_down":
		e.view.StepCursor(1)
		e.setStatus("")
	case "move_up":
		e.view.StepCursor(-1)
		e.setStatus("")
	case "window_forward":
		e.view.StepRow(1)
		e.setStatus("")
	case "window_back":
		e.view.StepRow(-1)
		e.setStatus("")
	case "insert_after":
		e.InsertAfter()
	case "insert_before":
		e.InsertBefore()
	case "save":
		e.Save(e.confirmSave)
	case "delete":
		e.DeleteAtCursor()
	case "jump_start":
		e.view.JumpStart()
	case "quit":
		return e.Quit()
	default:
		logger.Debug("unknown action", "action", action)
	}
	return false
}

// Quit reports whether the user confirmed leaving.
func (e *Editor) Quit() bool {
	if !e.confirmQuit {
		return true
	}
	ok := e.ask(promptQuit)
	e.setStatus(e.filename)
	return ok
}

// InsertBefore adds a zero byte in front of the cursor.
func (e *Editor) InsertBefore() {
	e.insert(true)
}

// InsertAfter adds a zero byte behind the cursor.
func (e *Editor) InsertAfter() {
	e.insert(false)
}

func (e *Editor) insert(before bool) {
	if !e.doc.InsertAt(e.view.Cursor(), 0, before) {
		return
	}
	e.modified = true
	e.view.LengthChanged(e.doc.Len())
	e.setStatus("")
}

// DeleteAtCursor removes the byte under the cursor.
func (e *Editor) DeleteAtCursor() {
	if !e.doc.DeleteAt(e.view.Cursor()) {
		return
	}
	e.modified = true
	e.view.LengthChanged(e.doc.Len())
	e.setStatus("")
}

// writeNibble stores d in the high nibble of the cursor byte, or the low
// nibble when the previous keystroke already wrote the high one.
func (e *Editor) writeNibble(d byte) {
	pos := e.view.Cursor()
	v, ok := e.doc.Get(pos)
	if !ok {
		return
	}
	if e.edit.nibble == 0 {
		v = v&0x0F | d<<4
	} else {
		v = v&0xF0 | d
	}
	e.doc.Set(pos, v)
	e.edit.nibble ^= 1
	e.edit.dirty = true
	e.modified = true
}

func (e *Editor) endCycle() {
	if !e.edit.dirty {
		e.edit.nibble = 0
	}
	e.edit.dirty = false
}

func (e *Editor) ask(prompt string) bool {
	e.setStatus(prompt)
	if e.confirm == nil {
		return false
	}
	return e.confirm(prompt)
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

// SetStatusMessage replaces the status line message.
func (e *Editor) SetStatusMessage(msg string) {
	e.setStatus(msg)
}

func (e *Editor) Status() Status {
	return Status{
		Message:  e.statusMessage,
		Cursor:   e.view.Cursor(),
		Length:   e.doc.Len(),
		Modified: e.modified,
	}
}
