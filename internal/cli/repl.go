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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on 'a'. Unknown commands are reported back to the user. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			fmt.Printf("jobtrack (%s)> ", s)
		} else {
			fmt.Print("jobtrack> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist [status], show <id>, update <id>, delete <id>, import <file>, export, clear, stats, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "import":
			_ = a.Import(ctx, args)

		case "export":
			_ = a.Export(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
