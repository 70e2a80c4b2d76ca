package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Commands:
  list | l                  show the current page
  refresh                   fetch the current page again
  search [text...]          filter by text (no text clears the search)
  status active|inactive|all
  page <n> | next | prev    move between pages
  size 5|10|20              change the page size
  sort <field> [asc|desc]   sort by id, username, status or createdAt
  sort off                  back to the server's order
  new                       create a user
  edit <id>                 edit a user on this page
  toggle <id>               activate or deactivate a user on this page
  delete <id>               delete a user on this page
  history [n|clear]         show or clear the local action journal
  exit | quit               leave the program`

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	Size(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The prompt shows the connection status from statusFn. The loop ends on
// EOF, on "exit"/"quit" or when ctx is cancelled, also while waiting at the
// prompt.
//
// Errors returned by handlers are ignored here; handlers report their own
// problems so the loop stays focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("users %s> ", statusFn()))

		line, err := readLineContext(ctx, reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "status":
			_ = a.Status(ctx, args)

		case "page":
			_ = a.Page(ctx, args)

		case "next":
			_ = a.Next(ctx, args)

		case "prev":
			_ = a.Prev(ctx, args)

		case "size":
			_ = a.Size(ctx, args)

		case "sort":
			_ = a.Sort(ctx, args)

		case "new":
			_ = a.New(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "toggle":
			_ = a.Toggle(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLineContext reads one line like readLine but gives up when ctx is
// done. The pending read is abandoned and the reader must not be used again.
func readLineContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := readLine(reader)
		ch <- lineResult{line, err}
	}()
	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
