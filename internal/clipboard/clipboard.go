// Package clipboard copies text to the system clipboard through the
// platform's clipboard command, or an OSC 52 terminal sequence when there
// is none.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard command can be found.
var ErrUnavailable = errors.New("no clipboard command available")

// Swapped in tests.
var (
	lookPath           = exec.LookPath
	terminal io.Writer = os.Stderr
)

// command picks the clipboard program for goos. On Linux, Wayland's
// wl-copy is preferred, then xclip, then xsel.
func command(goos string) ([]string, error) {
	var candidates [][]string
	switch goos {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"cmd", "/c", "clip"}}
	default:
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
	for _, c := range candidates {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrUnavailable
}

// Write copies text to the system clipboard. Without a clipboard command
// the text is sent to the terminal as an OSC 52 sequence, which most
// terminal emulators honour, including over SSH.
func Write(text string) error {
	args, err := command(runtime.GOOS)
	if errors.Is(err, ErrUnavailable) {
		return writeTerminal(terminal, text)
	}
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func writeTerminal(w io.Writer, text string) error {
	if _, err := osc52.New(text).WriteTo(w); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Available reports whether a clipboard command is installed. Write works
// without one, but only on terminals that accept OSC 52.
func Available() bool {
	_, err := command(runtime.GOOS)
	return err == nil
}
