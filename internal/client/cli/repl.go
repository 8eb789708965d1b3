package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	SelectFile(ctx context.Context, path string) error
	Reset()
	Upload(ctx context.Context, path string) error
	History(ctx context.Context) error
	Data(ctx context.Context, force bool) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit". The prompt shows statusFn(). Handler errors are ignored here;
// handlers render and log their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fshare (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		arg := strings.TrimSpace(rest)

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: select <path>, reset, upload [path], history, data [-f], whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, history, exit")
			}

		case "login":
			_ = a.SignIn(ctx)

		case "logout":
			_ = a.SignOut(ctx)

		case "select":
			if arg == "" {
				printlnFn("Usage: select <path>")
				continue
			}
			_ = a.SelectFile(ctx, arg)

		case "reset":
			a.Reset()

		case "upload":
			_ = a.Upload(ctx, arg)

		case "history", "ls":
			_ = a.History(ctx)

		case "data":
			_ = a.Data(ctx, arg == "-f" || arg == "--refresh")

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
