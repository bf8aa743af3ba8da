package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/client/shell"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	view() shell.View
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Navigate(ctx context.Context, v shell.View) error
	// Exec runs a command local to the active view. It reports false when
	// the view has no such command.
	Exec(ctx context.Context, cmd string, args []string) (bool, error)
}

// viewCommands lists the view-local commands shown by help.
var viewCommands = map[shell.View]string{
	shell.ViewDashboard:   "more",
	shell.ViewSearch:      "find <text>, type <t>, date <today|week|month|year|all>, tag <t>, kind <k>, page <n>, clear",
	shell.ViewFileDetails: "select <n>, url",
	shell.ViewUpload:      "add <path...>",
	shell.ViewUpgrade:     "pay <plan>",
}

// runREPL starts a simple read-eval-print loop for the GophDrive shell.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not signed in:
//	  - help           show available commands
//	  - login          paste a session token
//	  - exit | quit    leave the program
//
//	Signed in:
//	  - dashboard | search | details | upload | upgrade   switch view
//	  - help | logout | exit
//	  - anything else is handed to the active view
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gd %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if cmd == "login" {
				_ = a.Login(ctx)
			} else {
				printlnFn("Please login first. Available commands: login, help, exit")
			}
			continue
		}

		if cmd == "logout" {
			_ = a.Logout(ctx)
			continue
		}
		if v, ok := shell.ParseView(cmd); ok {
			_ = a.Navigate(ctx, v)
			continue
		}
		ok, _ := a.Exec(ctx, cmd, args)
		if !ok {
			printlnFn(fmt.Sprintf("Unknown command: %s", cmd))
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, help, exit")
		return
	}
	printlnFn("Views: dashboard, search, details, upload, upgrade")
	printlnFn("Commands: help, logout, exit")
	printlnFn(fmt.Sprintf("In %s: %s", a.view(), viewCommands[a.view()]))
}
