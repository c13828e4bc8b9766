package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) Add(ctx context.Context) error    { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	return f.record("edit %s", id)
}
func (f *fakeExec) Archive(ctx context.Context, id string) error {
	return f.record("archive %s", id)
}
func (f *fakeExec) Unarchive(ctx context.Context, id string) error {
	return f.record("unarchive %s", id)
}
func (f *fakeExec) Toggle(ctx context.Context, id string) error {
	return f.record("toggle %s", id)
}
func (f *fakeExec) List(ctx context.Context, done bool) error {
	return f.record("list %v", done)
}
func (f *fakeExec) Others(ctx context.Context, done bool) error {
	return f.record("others %v", done)
}
func (f *fakeExec) Archived(ctx context.Context) error { return f.record("archived") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"",
		"add",
		"l",
		"list done",
		"others",
		"others archived",
		"archived",
		"edit 4",
		"done 4",
		"archive 5",
		"unarchive 4",
		"toggle 2",
		"whoami",
		"logout",
		"register",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "add", "list false", "list true", "others false", "others true", "archived",
		"edit 4", "archive 4", "archive 5", "unarchive 4", "toggle 2", "whoami", "logout", "register",
	}, exec.calls)
}

func TestRunREPL_UsageUnknownAndEOF(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "(me)" },
		bufio.NewReader(strings.NewReader("edit\ntoggle 1 2\nfoobar\nhelp")))

	assert.Empty(t, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "tt(me)> ")
	assert.Contains(t, joined, "Usage: edit <task id>")
	assert.Contains(t, joined, "Usage: toggle <task id>")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, helpLoggedIn)
}

func TestRunREPL_HelpWhenAnonymous(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" },
		bufio.NewReader(strings.NewReader("help\nquit\n")))

	assert.Contains(t, *out, helpAnonymous)
	assert.Contains(t, *out, "Bye!")
}
