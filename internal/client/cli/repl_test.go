package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophdrive/internal/client/shell"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	current  shell.View

	calls []string
	// known lists the view-local commands Exec accepts.
	known map[string]bool
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) view() shell.View { return f.current }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Navigate(ctx context.Context, v shell.View) error {
	f.calls = append(f.calls, "nav:"+v.String())
	f.current = v
	return nil
}
func (f *fakeExec) Exec(ctx context.Context, cmd string, args []string) (bool, error) {
	if !f.known[cmd] {
		return false, nil
	}
	f.calls = append(f.calls, strings.TrimSpace(cmd+" "+strings.Join(args, " ")))
	return true, nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"search",
		"login",
		"help",
		"",
		"search",
		"find quarterly report",
		"details",
		"select 2",
		"foobar",
		"logout",
		"upload",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{known: map[string]bool{"find": true, "select": true}}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{"login", "nav:search", "find quarterly report", "nav:filedetails", "select 2", "logout"}
	assert.Equal(t, want, exec.calls)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Available commands: login, help, exit")
	assert.Contains(t, joined, "Views: dashboard, search, details, upload, upgrade")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "Please login first")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_HelpShowsViewCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true, current: shell.ViewUpgrade}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("help\nquit\n"))

	assert.Contains(t, strings.Join(*out, "\n"), "In upgrade: pay <plan>")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true, known: map[string]bool{"more": true}}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("more"))

	assert.Equal(t, []string{"more"}, exec.calls)
}

func TestViewCommands_CoverEveryView(t *testing.T) {
	for _, v := range shell.Views() {
		assert.NotEmpty(t, viewCommands[v], v.String())
	}
}
