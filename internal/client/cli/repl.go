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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Add(ctx context.Context) error
	Inbox(ctx context.Context) error
	Today(ctx context.Context, args []string) error
	Completed(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error

	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	Delete(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: add, inbox, today [date], completed, done <id>, undo <id>, " +
		"profile, edit, theme [name], passwd, delete, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit". Command
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tj%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

var errLoginRequired = errors.New("please login first")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "add", "inbox", "i", "today", "t", "completed", "c", "done", "undo",
			"profile", "edit", "theme", "passwd", "delete":
			return errLoginRequired
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.Add(ctx)
	case "inbox", "i":
		return a.Inbox(ctx)
	case "today", "t":
		return a.Today(ctx, args)
	case "completed", "c":
		return a.Completed(ctx)
	case "done":
		return a.Done(ctx, args)
	case "undo":
		return a.Undo(ctx, args)
	case "profile":
		return a.Profile(ctx)
	case "edit":
		return a.Edit(ctx)
	case "theme":
		return a.Theme(ctx, args)
	case "passwd":
		return a.Passwd(ctx)
	case "delete":
		return a.Delete(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
