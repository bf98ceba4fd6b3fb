package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
)

// List prints the current gallery in endpoint order.
func (a *App) List(_ context.Context) error {
	if banner := a.gallery.Banner(); banner != "" {
		a.println("!", banner)
	}

	entries := a.gallery.Entries()
	if len(entries) == 0 {
		a.println("No apps registered yet.")
		return nil
	}
	for i, e := range entries {
		a.printf("%2d. %s (by %s)\n", i+1, e.Name, e.Author)
		a.printf("    %s\n", e.Thumbnail())
	}
	return nil
}

// Show prints the detail view of one entry: every field and every image.
func (a *App) Show(_ context.Context, ref string) error {
	e, err := a.gallery.Resolve(ref)
	if err != nil {
		a.println("No such app:", ref)
		return err
	}
	a.printDetail(e)
	return nil
}

func (a *App) printDetail(e models.Entry) {
	a.println(e.Name)
	a.println(strings.Repeat("=", len([]rune(e.Name))))
	a.printf("Author:     %s\n", e.Author)
	a.printf("URL:        %s\n", e.URL)
	a.printf("Registered: %s\n", e.Timestamp)
	a.printf("ID:         %s\n", e.ID)
	a.println()
	a.println(e.Summary())
	a.println()
	if len(e.Images) == 0 {
		a.printf("Images: %s\n", models.PlaceholderThumbnail)
		return
	}
	a.println("Images:")
	for _, img := range e.Images {
		a.printf("  %s\n", img)
	}
}

// Open prints the entry's URL for the terminal to open.
func (a *App) Open(_ context.Context, ref string) error {
	e, err := a.gallery.Resolve(ref)
	if err != nil {
		a.println("No such app:", ref)
		return err
	}
	a.println(e.URL)
	return nil
}

// Refresh reloads the gallery from the endpoint.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.gallery.Refresh(ctx); err != nil {
		a.println(a.gallery.Banner())
		return err
	}
	a.printf("Loaded %d apps.\n", len(a.gallery.Entries()))
	return nil
}
