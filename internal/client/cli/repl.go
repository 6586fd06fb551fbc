package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	consumeSessionExpired() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Chats(ctx context.Context) error
	OpenChat(ctx context.Context, id int64) error
	NewChat(ctx context.Context) error
	Send(ctx context.Context) error
	Doctors(ctx context.Context) error
	Book(ctx context.Context, doctorID int64) error
	Appointments(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: profile, edit, chats, chat <id>, new, send, doctors, book <doctor id>, appointments, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the gynecare CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by handlers are printed and
// the loop goes on. The loop exits on EOF or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  - help                — show available commands
//	  - register            — create an account
//	  - login               — authenticate
//	  - exit | quit         — leave the program
//
//	Logged in:
//	  - profile | edit      — show or change the profile
//	  - chats               — list conversations
//	  - chat <id>           — open a conversation
//	  - new                 — start a conversation
//	  - send                — send a message to the open conversation
//	  - doctors             — list doctors
//	  - book <doctor id>    — request an appointment
//	  - appointments        — list requested appointments
//	  - logout              — log out
//
// After every command the REPL checks whether the server dropped the session;
// if so it prints a notice and runs the login prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gyn> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
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

		err = dispatch(ctx, a, cmd, args)

		if a.consumeSessionExpired() {
			// The notice below already explains a rejected token.
			if !errors.Is(err, client.ErrAuthenticationExpired) {
				report(err)
			}
			printlnFn(msgSessionExpired)
			report(a.Login(ctx))
			continue
		}
		report(err)
	}
}

func report(err error) {
	if err != nil {
		printlnFn(userMessage(err))
	}
}

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

	switch cmd {
	case "logout", "profile", "edit", "chats", "chat", "new", "send", "doctors", "book", "appointments":
		if !a.isLoggedIn() {
			printlnFn(msgLoginFirst)
			return nil
		}
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx)
	case "edit":
		return a.EditProfile(ctx)
	case "chats":
		return a.Chats(ctx)
	case "new":
		return a.NewChat(ctx)
	case "send":
		return a.Send(ctx)
	case "doctors":
		return a.Doctors(ctx)
	case "appointments":
		return a.Appointments(ctx)
	case "chat":
		id, ok := idArg(args, "chat <id>")
		if !ok {
			return nil
		}
		return a.OpenChat(ctx, id)
	case "book":
		id, ok := idArg(args, "book <doctor id>")
		if !ok {
			return nil
		}
		return a.Book(ctx, id)
	}
	return nil
}

func idArg(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid id:", args[0])
		return 0, false
	}
	return id, true
}
