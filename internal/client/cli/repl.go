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

const helpText = `Available commands:
  (l)ist            list apps
  show <n|id>       show one app with all images
  open <n|id>       print the app URL
  register          register a new app (creation password required)
  edit <n|id>       edit an app (owner password required)
  delete <n|id>     delete an app (owner password required)
  refresh           reload the list from the server
  exit | quit       leave the program

An empty answer at a password prompt cancels the command, so an empty
password is never sent. After a failed submit the form is kept and can be
retried, edited or cancelled.`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, ref string) error
	Open(ctx context.Context, ref string) error
	Register(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the gallery CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands taking an entry accept its 1-based
// list position or its id. The loop exits on EOF, on context cancellation,
// or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gallery %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withRef := func(usage string, fn func(context.Context, string) error) {
			if len(args) == 0 {
				printlnFn("Usage:", usage)
				return
			}
			_ = fn(ctx, args[0])
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			withRef("show <n|id>", a.Show)

		case "open":
			withRef("open <n|id>", a.Open)

		case "register":
			_ = a.Register(ctx)

		case "edit":
			withRef("edit <n|id>", a.Edit)

		case "delete":
			withRef("delete <n|id>", a.Delete)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
