package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/usersadmin/internal/client/controller"
)

// TerminalNotifier prints notifications as "[severity] message" lines.
type TerminalNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func NewTerminalNotifier(w io.Writer, color bool) *TerminalNotifier {
	return &TerminalNotifier{w: w, color: color}
}

var severityColor = map[controller.Severity]string{
	controller.SeveritySuccess: "\x1b[32m",
	controller.SeverityInfo:    "\x1b[36m",
	controller.SeverityWarning: "\x1b[33m",
	controller.SeverityError:   "\x1b[31m",
}

func (n *TerminalNotifier) Notify(message string, severity controller.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	tag := "[" + string(severity) + "]"
	if code, ok := severityColor[severity]; ok && n.color {
		tag = code + tag + "\x1b[0m"
	}
	fmt.Fprintln(n.w, tag, message)
}

// TerminalConfirmer asks on the terminal and blocks until a line is entered.
type TerminalConfirmer struct {
	reader *bufio.Reader
	w      io.Writer
}

func NewTerminalConfirmer(reader *bufio.Reader, w io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{reader: reader, w: w}
}

func (c *TerminalConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return Confirm(c.reader, prompt, c.w)
}
