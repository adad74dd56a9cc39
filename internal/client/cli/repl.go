package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/locator/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	access() services.Access
	afterCommand(ctx context.Context)

	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	SignOut(ctx context.Context) error

	ShowHome(ctx context.Context) error
	Select(ctx context.Context, id int64) error
	CreateHome(ctx context.Context) error
	EditHome(ctx context.Context, id int64) error
	DeleteHome(ctx context.Context) error

	ShowLocation(ctx context.Context, id int64) error
	CreateLocation(ctx context.Context) error
	EditLocation(ctx context.Context, id int64) error
	DeleteLocation(ctx context.Context, id int64) error

	Users(ctx context.Context) error
	EditUser(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
	PromoteUser(ctx context.Context, id int64) error
}

// need is the access level a command asks for.
type need int

const (
	needNothing need = iota
	needAuth
	needAdmin
)

func allowed(acc services.Access, n need) bool {
	switch n {
	case needAuth:
		if !acc.Authenticated {
			printlnFn("Sign in first (signin).")
			return false
		}
	case needAdmin:
		if !acc.Admin {
			printlnFn("This action requires an admin account.")
			return false
		}
	}
	return true
}

func helpText(acc services.Access) string {
	cmds := []string{"home", "location <id>"}
	if acc.Authenticated {
		cmds = append(cmds, "select <id>", "home create", "home edit <id>", "location create", "location edit <id>", "signout")
	} else {
		cmds = append(cmds, "signin", "signup")
	}
	if acc.Admin {
		cmds = append(cmds, "home delete", "location delete <id>", "users", "user edit|delete|promote <id>")
	}
	cmds = append(cmds, "help", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// withID parses args[0] as an id and runs fn, or prints usage.
func withID(args []string, usage string, fn func(id int64) error) {
	if len(args) != 1 {
		printlnFn("Usage:", usage)
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		printlnFn("Usage:", usage)
		return
	}
	_ = fn(id)
}

// runREPL starts a simple read-eval-print loop for the locator console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). Commands map to
// views, named by their routes:
//
//	home                          home selector and ranked locations (/)
//	select <id>                   select a home
//	home create | edit <id>       home forms (/home/create, /home/edit/:id)
//	home delete                   delete the selected home (admin)
//	location <id>                 location details (/location/:id)
//	location create | edit <id>   location forms
//	location delete <id>          delete a location (admin)
//	users                         user management (/users, admin)
//	user edit|delete|promote <id>
//	signin | signup | signout
//	help | exit | quit
//
// Access checks here only decide what is offered; the server has the final
// word. Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("locator%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		acc := a.access()

		switch cmd {
		case "help":
			printlnFn(helpText(acc))

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "home":
			switch {
			case len(args) == 0:
				_ = a.ShowHome(ctx)
			case args[0] == "create":
				if allowed(acc, needAuth) {
					_ = a.CreateHome(ctx)
				}
			case args[0] == "edit":
				if allowed(acc, needAuth) {
					withID(args[1:], "home edit <id>", func(id int64) error { return a.EditHome(ctx, id) })
				}
			case args[0] == "delete":
				if allowed(acc, needAdmin) {
					_ = a.DeleteHome(ctx)
				}
			default:
				printlnFn("Usage: home [create | edit <id> | delete]")
			}

		case "select":
			withID(args, "select <id>", func(id int64) error { return a.Select(ctx, id) })

		case "location":
			switch {
			case len(args) == 0:
				printlnFn("Usage: location <id> | create | edit <id> | delete <id>")
			case args[0] == "create":
				if allowed(acc, needAuth) {
					_ = a.CreateLocation(ctx)
				}
			case args[0] == "edit":
				if allowed(acc, needAuth) {
					withID(args[1:], "location edit <id>", func(id int64) error { return a.EditLocation(ctx, id) })
				}
			case args[0] == "delete":
				if allowed(acc, needAdmin) {
					withID(args[1:], "location delete <id>", func(id int64) error { return a.DeleteLocation(ctx, id) })
				}
			default:
				withID(args, "location <id>", func(id int64) error { return a.ShowLocation(ctx, id) })
			}

		case "users":
			if allowed(acc, needAdmin) {
				_ = a.Users(ctx)
			}

		case "user":
			if !allowed(acc, needAdmin) {
				break
			}
			if len(args) == 0 {
				printlnFn("Usage: user edit|delete|promote <id>")
				break
			}
			switch args[0] {
			case "edit":
				withID(args[1:], "user edit <id>", func(id int64) error { return a.EditUser(ctx, id) })
			case "delete":
				withID(args[1:], "user delete <id>", func(id int64) error { return a.DeleteUser(ctx, id) })
			case "promote", "demote":
				withID(args[1:], "user promote <id>", func(id int64) error { return a.PromoteUser(ctx, id) })
			default:
				printlnFn("Usage: user edit|delete|promote <id>")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.afterCommand(ctx)
	}
}
