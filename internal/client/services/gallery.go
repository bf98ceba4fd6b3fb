package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

// Gallery owns the displayed entry collection. The collection is only ever
// replaced as a whole by a successful Refresh; readers get copies.
type Gallery struct {
	client       client.Client
	deniedAuthor string
	log          logging.Logger

	mu      sync.RWMutex
	entries []models.Entry
	err     error
}

// NewGallery returns an empty gallery. Entries authored by deniedAuthor are
// hidden from display; an empty deniedAuthor hides nothing.
func NewGallery(c client.Client, deniedAuthor string, log logging.Logger) *Gallery {
	if log == nil {
		log = logging.Nop()
	}
	return &Gallery{client: c, deniedAuthor: deniedAuthor, log: log}
}

// FilterDenied drops every entry whose author equals denied exactly and
// keeps the rest in their original order.
func FilterDenied(entries []models.Entry, denied string) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if denied != "" && e.Author == denied {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Refresh fetches the full collection and swaps it in. On failure the
// previous collection stays visible and Err reports the banner error.
func (g *Gallery) Refresh(ctx context.Context) error {
	_, err := g.Load(ctx)
	return err
}

// Load is Refresh returning the collection and error it produced. Callers
// serving concurrent requests render from these values rather than reading
// the shared state back, which another Load may have replaced meanwhile.
func (g *Gallery) Load(ctx context.Context) ([]models.Entry, error) {
	fetched, err := g.client.FetchAll(ctx)
	if err != nil {
		g.log.Error(ctx, "fetching entries failed", "error", err)

		g.mu.Lock()
		defer g.mu.Unlock()
		g.err = err
		return append([]models.Entry(nil), g.entries...), err
	}

	visible := FilterDenied(fetched, g.deniedAuthor)
	g.log.Info(ctx, "entries loaded", "fetched", len(fetched), "visible", len(visible))

	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = visible
	g.err = nil
	return append([]models.Entry(nil), visible...), nil
}

// Snapshot returns the current collection and the last refresh error as one
// consistent pair.
func (g *Gallery) Snapshot() ([]models.Entry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Entry(nil), g.entries...), g.err
}

// Entries returns a copy of the current collection.
func (g *Gallery) Entries() []models.Entry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Entry(nil), g.entries...)
}

// Err returns the error of the last failed Refresh, or nil after a
// successful one.
func (g *Gallery) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

// Banner is the inline error text for the last failed Refresh.
func (g *Gallery) Banner() string {
	return UserMessage(ActionList, g.Err())
}

// Find looks an entry up by id in the current collection.
func (g *Gallery) Find(id string) (models.Entry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return FindEntry(g.entries, id)
}

// FindEntry looks an entry up by id in entries.
func FindEntry(entries []models.Entry, id string) (models.Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Entry{}, fmt.Errorf("entry %q: %w", id, common.ErrorNotFound)
}

// Resolve accepts either a 1-based position in the current listing or an
// entry id. Ids win over positions when both match.
func (g *Gallery) Resolve(ref string) (models.Entry, error) {
	ref = strings.TrimSpace(ref)
	if e, err := g.Find(ref); err == nil {
		return e, nil
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %q: %w", ref, common.ErrorNotFound)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if n < 1 || n > len(g.entries) {
		return models.Entry{}, fmt.Errorf("entry #%d: %w", n, common.ErrorNotFound)
	}
	return g.entries[n-1], nil
}

// afterMutation re-fetches the collection once a mutation succeeded. A
// failing refresh leaves the mutation's success intact.
func (g *Gallery) afterMutation(ctx context.Context) {
	_ = g.Refresh(ctx)
}

// NewRegistration starts a registration workflow that refreshes g on success.
func (g *Gallery) NewRegistration(src images.Source) *Registration {
	return newRegistration(g.client, src, g.log, g.afterMutation)
}

// NewEdit starts an edit workflow for entry, gated by the owner password.
func (g *Gallery) NewEdit(entry models.Entry) *Edit {
	return newEdit(g.client, entry, g.log, g.afterMutation)
}

// NewDelete starts a delete workflow for entry.
func (g *Gallery) NewDelete(entry models.Entry) *Delete {
	return newDelete(g.client, entry, g.log, g.afterMutation)
}
