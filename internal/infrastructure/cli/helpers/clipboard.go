package helpers

import (
	"fmt"
	"io"
	"runtime"

	"github.com/atotto/clipboard"
)

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}

// CopyAndReport copies text and prints a one-line note to errOut. A failed
// copy is reported but never fails the command.
func CopyAndReport(errOut io.Writer, text string) {
	if err := CopyToClipboard(text); err != nil {
		fmt.Fprintln(errOut, warnStyle.Render("copy failed: "+err.Error()))
		return
	}
	fmt.Fprintln(errOut, okStyle.Render("copied to clipboard"))
}
