package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
	Bookmark(ctx context.Context, args []string) error
	Bookmarks(ctx context.Context) error
	History(ctx context.Context) error
	Recent(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Liked(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Write(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print and
// log their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("coffee> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Browse:  home, list [page], search <words>, read <id>")
			printlnFn("Yours:   bookmark <id>, bookmarks, history, recent")
			if a.isLoggedIn() {
				printlnFn("Account: like <id>, liked, dashboard, logout, exit")
				printlnFn("Editor:  write, edit [id]")
			} else {
				printlnFn("Account: login, exit")
			}
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "home":
			_ = a.Home(ctx)
		case "list":
			_ = a.List(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "read":
			_ = a.Read(ctx, args)
		case "bookmark":
			_ = a.Bookmark(ctx, args)
		case "bookmarks":
			_ = a.Bookmarks(ctx)
		case "history":
			_ = a.History(ctx)
		case "recent":
			_ = a.Recent(ctx)
		case "like":
			_ = a.Like(ctx, args)
		case "liked":
			_ = a.Liked(ctx)
		case "dashboard":
			_ = a.Dashboard(ctx)
		case "write":
			_ = a.Write(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "exit", "quit":
			return
		default:
			printlnFn(fmt.Sprintf("Unknown command: %s (try 'help')", cmd))
		}
	}
}
