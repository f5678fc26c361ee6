// Package app wires the editor together: configuration, the document
// buffer, the modal input state machine, the renderer, and the event
// loop that drives one redraw per processed event.
package app

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/keylite/internal/command"
	"github.com/dshills/keylite/internal/config"
	"github.com/dshills/keylite/internal/engine/buffer"
	"github.com/dshills/keylite/internal/engine/cursor"
	"github.com/dshills/keylite/internal/input/key"
	"github.com/dshills/keylite/internal/input/mode"
	"github.com/dshills/keylite/internal/renderer"
	"github.com/dshills/keylite/internal/renderer/backend"
)

// ErrQuit signals a user-requested end of the session. Run returns it
// after a clean shutdown; callers treat it as success.
var ErrQuit = errors.New("quit")

// Options configures a session.
type Options struct {
	// Path is the file being edited. Required.
	Path string

	// ConfigPath overrides the config file location. Empty uses the
	// standard location.
	ConfigPath string

	// LogFile and LogLevel override the config file's log settings.
	LogFile  string
	LogLevel string
}

// Application is one editing session on one file.
type Application struct {
	opts      Options
	cfg       config.Config
	logger    *Logger
	logCloser io.Closer

	buf   *buffer.Buffer
	cur   *cursor.Cursor
	modes *mode.Manager

	backend  backend.Backend
	renderer *renderer.Renderer

	// notice is the transient status message. It is cleared on every
	// mode transition and set by command execution.
	notice string

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// New loads configuration and the target file. Startup I/O errors are
// reported here, before the terminal is touched.
func New(opts Options) (*Application, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	if cfgPath != "" {
		// Seed the config file on first run. A seed failure is not
		// fatal: the session falls back to the built-in defaults.
		_ = config.WriteDefault(cfgPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logger := NullLogger
	var logCloser io.Closer
	if cfg.LogFile != "" {
		logger, logCloser, err = FileLogger(cfg.LogFile, ParseLogLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		logger = logger.WithComponent("app")
	}

	buf, err := buffer.Load(opts.Path)
	if err != nil {
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, fmt.Errorf("open %s: %w", opts.Path, err)
	}

	modes := mode.NewManager()
	modes.Register(mode.NewNormalMode())
	modes.Register(mode.NewInsertMode())
	modes.Register(mode.NewCommandMode())

	return &Application{
		opts:      opts,
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		buf:       buf,
		cur:       cursor.New(),
		modes:     modes,
		done:      make(chan struct{}),
	}, nil
}

// SetBackend replaces the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) {
	app.backend = b
}

// Buffer returns the session's document buffer.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// Notice returns the current status message.
func (app *Application) Notice() string {
	return app.notice
}

// Run acquires the terminal, drives the event loop, and releases the
// terminal on every exit path. Returns ErrQuit on a user-requested
// quit.
func (app *Application) Run() error {
	if app.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		app.backend = term
	}
	if err := app.backend.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer app.Shutdown()
	defer app.closeLog()

	app.renderer = renderer.New(app.backend, app.cfg.Styles(), app.cfg.GutterWidth)

	if err := app.modes.SetInitialMode(mode.ModeNormal, app.modeContext()); err != nil {
		return err
	}

	app.running.Store(true)
	events := app.startInputPolling()

	app.logger.Info("session started: %s", app.opts.Path)
	app.render()

	for ev := range events {
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				app.logger.Info("session ended: %s", app.opts.Path)
			}
			return err
		}
		app.render()
	}
	return ErrQuit
}

// Shutdown stops the event loop and releases the terminal. Safe to
// call more than once and from other goroutines (signal handlers).
func (app *Application) Shutdown() {
	app.running.Store(false)
	app.doneOnce.Do(func() { close(app.done) })
	if app.backend != nil {
		app.backend.Shutdown()
	}
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}

// startInputPolling starts a goroutine that blocks on PollEvent and
// feeds events to the returned channel. Backend Shutdown unblocks the
// poll with EventClosed, ending the goroutine.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for app.running.Load() {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				// Queue full; drop rather than block the poller.
				app.logger.WithComponent("input").Warn("event queue full, dropping event")
			}
		}
	}()

	return events
}

// handleEvent processes one terminal event. Returns ErrQuit when the
// session should end.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.cur.Follow(app.renderer.VisibleRows())
		return nil

	case backend.EventClosed:
		return ErrQuit

	case backend.EventKey:
		return app.handleKey(convertKeyEvent(ev))
	}
	return nil
}

// handleKey routes a key event through the active mode and applies the
// resulting transition.
func (app *Application) handleKey(kev key.Event) error {
	ctx := app.modeContext()
	res := app.modes.Current().HandleKey(kev, ctx)

	if res.Quit {
		return ErrQuit
	}
	if res.Submit {
		if err := app.modes.Switch(mode.ModeNormal, ctx); err != nil {
			return err
		}
		app.notice = ""
		return app.execute(command.Parse(res.Command))
	}
	if res.SwitchTo != "" {
		app.notice = ""
		if err := app.modes.Switch(res.SwitchTo, ctx); err != nil {
			return err
		}
	}
	return nil
}

// execute runs a parsed colon command.
func (app *Application) execute(op command.Op) error {
	switch op {
	case command.OpSave:
		app.save()

	case command.OpQuit:
		return ErrQuit

	case command.OpSaveQuit:
		if app.save() {
			return ErrQuit
		}
		// Save failed: stay in the session so no edits are lost.

	case command.OpInvalid:
		app.notice = "Invalid command"
	}
	return nil
}

// save writes the buffer to the session path and sets the notice.
// Returns true on success.
func (app *Application) save() bool {
	if err := app.buf.Save(app.opts.Path); err != nil {
		app.logger.Error("save failed: %v", err)
		app.notice = "Save failed: " + err.Error()
		return false
	}
	app.logger.Debug("saved %s", app.opts.Path)
	app.notice = "File saved"
	return true
}

func (app *Application) modeContext() *mode.Context {
	return &mode.Context{
		Buffer:   app.buf,
		Cursor:   app.cur,
		ViewRows: app.renderer.VisibleRows(),
	}
}

// render draws one frame reflecting the current session state.
func (app *Application) render() {
	view := renderer.View{
		Buffer: app.buf,
		Cursor: app.cur,
		Mode:   "NORMAL",
		Notice: app.notice,
	}
	if cur := app.modes.Current(); cur != nil {
		view.Mode = cur.DisplayName()
		if cm, ok := cur.(*mode.CommandMode); ok {
			view.CommandActive = true
			view.Command = cm.Line()
		}
	}
	app.renderer.Render(view)
}

// convertKeyEvent maps a backend key event to the input layer's event
// type.
func convertKeyEvent(ev backend.Event) key.Event {
	var k key.Key
	switch ev.Key {
	case backend.KeyRune:
		k = key.KeyRune
	case backend.KeyEscape:
		k = key.KeyEscape
	case backend.KeyEnter:
		k = key.KeyEnter
	case backend.KeyTab:
		k = key.KeyTab
	case backend.KeyBackspace:
		k = key.KeyBackspace
	case backend.KeyDelete:
		k = key.KeyDelete
	case backend.KeyHome:
		k = key.KeyHome
	case backend.KeyEnd:
		k = key.KeyEnd
	case backend.KeyPageUp:
		k = key.KeyPageUp
	case backend.KeyPageDown:
		k = key.KeyPageDown
	case backend.KeyUp:
		k = key.KeyUp
	case backend.KeyDown:
		k = key.KeyDown
	case backend.KeyLeft:
		k = key.KeyLeft
	case backend.KeyRight:
		k = key.KeyRight
	default:
		k = key.KeyNone
	}

	var mods key.Modifier
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	return key.Event{Key: k, Rune: ev.Rune, Modifiers: mods}
}
