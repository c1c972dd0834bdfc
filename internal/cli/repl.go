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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Search(ctx context.Context, topic string) error
	Results(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Save(ctx context.Context, arg string) error
	Saved(ctx context.Context) error
	Remove(ctx context.Context, id string) error
	Export(ctx context.Context, what string) error
}

const (
	helpGuest  = "Available commands: search <topic>, results, show <n>, export, signup, login, exit"
	helpMember = "Available commands: search <topic>, results, show <n>, save <n>, saved, remove <id>, export [saved], whoami, logout, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Prompts issued by handlers read from the same reader, so
// piped input is consumed line by line. Handlers report their own errors to
// the user, so returned errors are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nichescope %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
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
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <topic>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "results":
			_ = a.Results(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <n>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "save":
			if len(args) == 0 {
				printlnFn("Usage: save <n>")
				continue
			}
			_ = a.Save(ctx, args[0])

		case "saved":
			_ = a.Saved(ctx)

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <id>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "export":
			what := ""
			if len(args) > 0 {
				what = args[0]
			}
			_ = a.Export(ctx, what)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
