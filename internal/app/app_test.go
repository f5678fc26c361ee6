package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/keylite/internal/config"
	"github.com/dshills/keylite/internal/renderer/backend"
)

func newTestApp(t *testing.T, path string) (*Application, *backend.NullBackend) {
	t.Helper()
	a, err := New(Options{
		Path:       path,
		ConfigPath: filepath.Join(t.TempDir(), "no-config.json"),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	b := backend.NewNullBackend(40, 10)
	a.SetBackend(b)
	return a, b
}

func postRunes(b *backend.NullBackend, s string) {
	for _, r := range s {
		b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
	}
}

func postKey(b *backend.NullBackend, k backend.Key) {
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: k})
}

// runApp runs the session and fails the test if it does not finish.
func runApp(t *testing.T, a *Application) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		a.Shutdown()
		t.Fatal("session did not finish")
		return nil
	}
}

func TestQuitFromNormalMode(t *testing.T) {
	a, b := newTestApp(t, filepath.Join(t.TempDir(), "file.txt"))
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Errorf("Run() = %v, want ErrQuit", err)
	}
}

func TestQuitCommand(t *testing.T) {
	a, b := newTestApp(t, filepath.Join(t.TempDir(), "file.txt"))
	postRunes(b, ":q")
	postKey(b, backend.KeyEnter)

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Errorf("Run() = %v, want ErrQuit", err)
	}
}

func TestSaveQuitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	a, b := newTestApp(t, path)

	postRunes(b, "ihi")
	postKey(b, backend.KeyEscape)
	postRunes(b, ":wq")
	postKey(b, backend.KeyEnter)

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "hi\n" {
		t.Errorf("file = %q, want %q", data, "hi\n")
	}
}

func TestSaveCommandSetsNotice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	a, b := newTestApp(t, path)

	postRunes(b, ":w")
	postKey(b, backend.KeyEnter)
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if a.Notice() != "File saved" {
		t.Errorf("Notice() = %q, want %q", a.Notice(), "File saved")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestInvalidCommandSetsNotice(t *testing.T) {
	a, b := newTestApp(t, filepath.Join(t.TempDir(), "file.txt"))

	postRunes(b, ":x")
	postKey(b, backend.KeyEnter)
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if a.Notice() != "Invalid command" {
		t.Errorf("Notice() = %q, want %q", a.Notice(), "Invalid command")
	}
}

func TestSaveFailureKeepsSession(t *testing.T) {
	// Parent directory does not exist, so the save fails.
	path := filepath.Join(t.TempDir(), "missing-dir", "file.txt")
	a, b := newTestApp(t, path)

	postRunes(b, "iabc")
	postKey(b, backend.KeyEscape)
	postRunes(b, ":wq")
	postKey(b, backend.KeyEnter)
	// The session survives the failed save; quit explicitly.
	postRunes(b, ":q")
	postKey(b, backend.KeyEnter)

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if !a.Buffer().Modified() {
		t.Error("buffer reported saved after a failed save")
	}
}

func TestEscapeInNormalModeIsIgnored(t *testing.T) {
	a, b := newTestApp(t, filepath.Join(t.TempDir(), "file.txt"))

	postKey(b, backend.KeyEscape)
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Errorf("Run() = %v, want ErrQuit", err)
	}
}

func TestResizeRefollowsViewport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "line"
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, b := newTestApp(t, path)

	// Scroll down past the bottom edge of the 8-row text area.
	for i := 0; i < 9; i++ {
		postKey(b, backend.KeyDown)
	}
	// Shrink to a 4-row text area; the viewport must re-follow.
	b.PostEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 6})
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}

	row := a.cur.Row()
	scroll := a.cur.Scroll()
	if row != 9 {
		t.Fatalf("row = %d, want 9", row)
	}
	if scroll != 6 {
		t.Errorf("scroll = %d, want 6", scroll)
	}
	if row < scroll || row >= scroll+4 {
		t.Errorf("cursor row %d outside viewport [%d, %d)", row, scroll, scroll+4)
	}
}

func TestNewSeedsDefaultConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "keylite", "config.json")
	_, err := New(Options{
		Path:       filepath.Join(t.TempDir(), "file.txt"),
		ConfigPath: cfgPath,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file not seeded: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("seeded config = %+v, want defaults", cfg)
	}
}

func TestNewKeepsExistingConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"gutter_width": 9}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{
		Path:       filepath.Join(t.TempDir(), "file.txt"),
		ConfigPath: cfgPath,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.cfg.GutterWidth != 9 {
		t.Errorf("GutterWidth = %d, want 9 (existing config overwritten)", a.cfg.GutterWidth)
	}
}

func TestMissingFileStartsEmpty(t *testing.T) {
	a, b := newTestApp(t, filepath.Join(t.TempDir(), "new.txt"))
	postRunes(b, "q")

	if err := runApp(t, a); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if got := a.Buffer().LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
}
