package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) error
	List(ctx context.Context, done bool) error
	Others(ctx context.Context, done bool) error
	Archived(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, archived, help, exit"
	helpLoggedIn  = "Available commands: (l)ist [done], others [done], archived, add, edit <id>, done <id>, toggle <id>, unarchive <id>, whoami, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop ends on EOF or on "exit"/"quit". Handlers report their own
// failures, so their errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tt%s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit", "done", "archive", "unarchive", "toggle":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <task id>", cmd))
				continue
			}
			switch cmd {
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "done", "archive":
				_ = a.Archive(ctx, args[0])
			case "unarchive":
				_ = a.Unarchive(ctx, args[0])
			case "toggle":
				_ = a.Toggle(ctx, args[0])
			}

		case "l", "list":
			_ = a.List(ctx, wantsDone(args))
		case "others":
			_ = a.Others(ctx, wantsDone(args))
		case "archived":
			_ = a.Archived(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}

func wantsDone(args []string) bool {
	return len(args) > 0 && (args[0] == "done" || args[0] == "archived")
}
