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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Import(ctx context.Context, path string) error
	Reminders(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the vault commands.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on scanner EOF or when the user types "exit" or
// "quit". Errors from handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vault> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list, show, add, update, delete, import <file.csv>, reminders, logout, exit")
			} else {
				printlnFn("Available commands: register, login, resetpw, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "resetpw":
			err = a.ResetPassword(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "list", "l":
			err = a.List(ctx)
		case "show":
			err = a.Show(ctx)
		case "add":
			err = a.Add(ctx)
		case "update":
			err = a.Update(ctx)
		case "delete":
			err = a.Delete(ctx)
		case "import":
			if len(parts) < 2 {
				printlnFn("Usage: import <file.csv>")
				continue
			}
			err = a.Import(ctx, parts[1])
		case "reminders":
			err = a.Reminders(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn("Unknown command. Type 'help' for the command list.")
		}

		if err != nil {
			printlnFn("Error: " + err.Error())
		}
	}
}
