package main

import (
	"fmt"
	"io"

	"github.com/storefront/core/internal/application/state"
)

// consoleViewport renders pages to a terminal. Each render fully replaces
// the previous content, mirroring the pull-based refresh model.
type consoleViewport struct {
	out io.Writer
}

func newConsoleViewport(out io.Writer) *consoleViewport {
	return &consoleViewport{out: out}
}

// Render replaces the viewport content
func (v *consoleViewport) Render(content string) {
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, content)
}

// ScrollToTop is a divider in a terminal
func (v *consoleViewport) ScrollToTop() {
	fmt.Fprintln(v.out, "----------------------------------------")
}

// ShowNotification is the display hook wired into the state store
func (v *consoleViewport) ShowNotification(message string, kind state.NotificationType) {
	fmt.Fprintf(v.out, "[%s] %s\n", kind, message)
}
