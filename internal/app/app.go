package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/editor"
	"github.com/kobzarvs/qhex/internal/logger"
)

// Exit statuses for startup failures. Anything else exits with 1.
const (
	ExitMissingPath = 2
	ExitUnreadable  = 3
	ExitNotWritable = 4
)

// StartupError aborts qhex before the screen is taken over.
type StartupError struct {
	Code int
	Err  error
}

func (e *StartupError) Error() string {
	return e.Err.Error()
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// App is the top-level runtime for qhex. The command line has already
// checked that exactly one path was given.
type App struct {
	path  string
	debug bool
}

func New(path string, debug bool) *App {
	return &App{path: path, debug: debug}
}

func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(a.debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ed, err := open(cfg, a.path)
	if err != nil {
		return err
	}
	defer ed.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	return loop(s, ed)
}

// open loads path and rewrites it once to make sure a later save can
// succeed.
func open(cfg config.Config, path string) (*editor.Editor, error) {
	ed := editor.New(cfg)
	if err := ed.OpenFile(path); err != nil {
		logger.Error("open failed", "path", path, "err", err)
		return nil, &StartupError{Code: ExitUnreadable, Err: err}
	}
	if err := ed.Probe(); err != nil {
		logger.Error("write probe failed", "path", path, "err", err)
		return nil, &StartupError{Code: ExitNotWritable, Err: fmt.Errorf("insufficient file privileges: %w", err)}
	}
	return ed, nil
}

// loop is the input cycle: wait for one event, apply it, redraw.
func loop(s tcell.Screen, ed *editor.Editor) error {
	ed.SetConfirm(func(prompt string) bool {
		return confirm(s, ed, prompt)
	})
	_, h := s.Size()
	ed.Resize(h)
	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			_, h := ev.Size()
			ed.Resize(h)
			s.Sync()
		}
		ed.Render(s)
	}
}

// confirm redraws with the prompt already in the status line and blocks
// until a key arrives. Only 'y' is affirmative.
func confirm(s tcell.Screen, ed *editor.Editor, prompt string) bool {
	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			return ev.Key() == tcell.KeyRune && ev.Rune() == 'y'
		case *tcell.EventResize:
			_, h := ev.Size()
			ed.Resize(h)
			ed.SetStatusMessage(prompt)
			s.Sync()
			ed.Render(s)
		}
	}
}
