package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.gallery.Err() != nil {
		return "(offline)"
	}
	return fmt.Sprintf("(%d apps)", len(a.gallery.Entries()))
}

// Root prints the welcome text, loads the gallery once and runs the REPL.
// A failing initial load is reported but does not stop the shell.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the App Gallery CLI (type 'help' for commands)")

	if err := a.gallery.Refresh(ctx); err != nil {
		a.println(a.gallery.Banner())
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
