package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) List(_ context.Context, a []string) error    { return f.rec("list", a) }
func (f *fakeExec) Refresh(_ context.Context, a []string) error { return f.rec("refresh", a) }
func (f *fakeExec) Search(_ context.Context, a []string) error  { return f.rec("search", a) }
func (f *fakeExec) Status(_ context.Context, a []string) error  { return f.rec("status", a) }
func (f *fakeExec) Page(_ context.Context, a []string) error    { return f.rec("page", a) }
func (f *fakeExec) Next(_ context.Context, a []string) error    { return f.rec("next", a) }
func (f *fakeExec) Prev(_ context.Context, a []string) error    { return f.rec("prev", a) }
func (f *fakeExec) Size(_ context.Context, a []string) error    { return f.rec("size", a) }
func (f *fakeExec) Sort(_ context.Context, a []string) error    { return f.rec("sort", a) }
func (f *fakeExec) New(_ context.Context, a []string) error     { return f.rec("new", a) }
func (f *fakeExec) Edit(_ context.Context, a []string) error    { return f.rec("edit", a) }
func (f *fakeExec) Toggle(_ context.Context, a []string) error  { return f.rec("toggle", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error  { return f.rec("delete", a) }
func (f *fakeExec) History(_ context.Context, a []string) error { return f.rec("history", a) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func TestRunREPL_Dispatch(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"l",
		"",
		"search ali ce",
		"STATUS inactive",
		"page 2",
		"next",
		"prev",
		"size 20",
		"sort username desc",
		"new",
		"edit 7",
		"toggle 5",
		"delete 3",
		"history 5",
		"refresh",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(online)" }, rdr(input))

	assert.Equal(t, []string{
		"list",
		"search ali ce",
		"status inactive",
		"page 2",
		"next",
		"prev",
		"size 20",
		"sort username desc",
		"new",
		"edit 7",
		"toggle 5",
		"delete 3",
		"history 5",
		"refresh",
	}, exec.calls)

	assert.Contains(t, *printed, "users (online)> ")
	assert.Contains(t, *printed, helpText)
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*printed)[len(*printed)-1])
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list"))
	assert.Equal(t, []string{"list"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\nlist\n"))
	assert.Empty(t, exec.calls)
}

func TestRunREPL_CancelWhileWaitingAtPrompt(t *testing.T) {
	capturePrints(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	exec := &fakeExec{}
	go func() {
		runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(pr))
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("REPL still blocked on input after cancel")
	}
	assert.Empty(t, exec.calls)
}
