// Package clipboard copies text for the user. The native system clipboard is
// tried first; when it is unavailable (headless hosts, SSH sessions) and a
// terminal is attached, the OSC 52 escape sequence asks the terminal emulator
// to perform the copy instead.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	atotto "github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"viralclip/internal/services"
)

// Copier places text on the clipboard.
type Copier struct {
	osc52Fallback bool

	// Injection points for tests.
	writeNative func(string) error
	terminal    func() bool
	ttyOut      io.Writer
}

// New builds a copier. When osc52Fallback is true and the native clipboard is
// unavailable, the copy falls back to the terminal escape route.
func New(osc52Fallback bool) *Copier {
	return &Copier{
		osc52Fallback: osc52Fallback,
		writeNative:   atotto.WriteAll,
		terminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
		ttyOut: os.Stdout,
	}
}

// Copy puts text on the clipboard, returning an export error when every
// available route fails.
func (c *Copier) Copy(text string) error {
	nativeErr := c.writeNative(text)
	if nativeErr == nil {
		return nil
	}

	if c.osc52Fallback && c.terminal() {
		if err := c.writeOSC52(text); err == nil {
			return nil
		}
	}

	return services.Wrap(services.ErrExport, "", "",
		"Copy failed. Please select and copy manually.", nativeErr)
}

func (c *Copier) writeOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(c.ttyOut, "\x1b]52;c;%s\a", encoded)
	return err
}
