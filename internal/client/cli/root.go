package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// nowFn is a test seam for token expiry checks.
var nowFn = time.Now

// getStatus builds the prompt status: the signed-in user and role, a note
// when the token has expired, and the server reachability.
func (a *App) getStatus() string {
	var parts []string

	snap := a.session.Snapshot()
	if snap.User != nil && snap.Authenticated() {
		parts = append(parts, snap.User.Name, string(snap.User.Role))
	}
	if claims, ok := a.session.Claims(); ok && claims.Expired(nowFn()) {
		parts = append(parts, "token expired")
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, " "))
}

// Root greets the user, starts the connectivity watcher and runs the REPL
// until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println(titleStyle.Render("Welcome to the locator console (type 'help' for commands)"))

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	if a.access().Authenticated {
		_ = a.ShowHome(ctx)
	} else {
		a.hint("Not signed in. Use 'signin' or 'signup'.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
