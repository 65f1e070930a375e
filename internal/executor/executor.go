package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gubarz/roadforge/internal/config"
)

// ErrNoLinks is returned when copy or open is requested without links
var ErrNoLinks = errors.New("no links to output")

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// ============================================================================
// Opener Interface
// ============================================================================

// Opener opens a link in the user's browser
type Opener interface {
	Open(link string) error
}

// systemOpener implements Opener with xdg-open or open
type systemOpener struct{}

// Open starts the platform URL handler without waiting for it
func (o *systemOpener) Open(link string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	if !commandExists(name) {
		return fmt.Errorf("cannot open %s: %s not found", link, name)
	}
	cmd := exec.Command(name, link)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Executor
// ============================================================================

// OutputMode represents how task links should be handled
type OutputMode string

const (
	OutputPrint OutputMode = "print"
	OutputCopy  OutputMode = "copy"
	OutputOpen  OutputMode = "open"
)

// Valid reports whether m is a known mode
func (m OutputMode) Valid() bool {
	switch m {
	case OutputPrint, OutputCopy, OutputOpen:
		return true
	}
	return false
}

// Executor hands task links to stdout, the clipboard or the browser
type Executor struct {
	out       io.Writer
	clipboard Clipboard
	opener    Opener
}

// NewExecutor creates an executor printing to stdout
func NewExecutor() *Executor {
	return &Executor{
		out:       os.Stdout,
		clipboard: &systemClipboard{fallback: os.Stdout},
		opener:    &systemOpener{},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (e *Executor) WithClipboard(c Clipboard) *Executor {
	e.clipboard = c
	return e
}

// WithOpener sets a custom opener implementation (useful for testing)
func (e *Executor) WithOpener(o Opener) *Executor {
	e.opener = o
	return e
}

// WithWriter sets where print mode writes
func (e *Executor) WithWriter(w io.Writer) *Executor {
	e.out = w
	return e
}

// Output handles links based on the configured mode
func (e *Executor) Output(links []string) error {
	return e.OutputWithMode(links, OutputMode(config.GetOutput()))
}

// OutputWithMode handles links with an explicit mode. Copy places all links
// on the clipboard, one per line; open opens each link in turn.
func (e *Executor) OutputWithMode(links []string, mode OutputMode) error {
	switch mode {
	case OutputCopy:
		if len(links) == 0 {
			return ErrNoLinks
		}
		return e.clipboard.Copy(strings.Join(links, "\n"))
	case OutputOpen:
		if len(links) == 0 {
			return ErrNoLinks
		}
		var errs []error
		for _, link := range links {
			if err := e.opener.Open(link); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	default: // print
		for _, link := range links {
			if _, err := fmt.Fprintln(e.out, link); err != nil {
				return err
			}
		}
		return nil
	}
}
