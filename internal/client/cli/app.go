package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/config"
	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/client/services"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

type App struct {
	config   *config.Config
	client   client.Client
	gallery  *services.Gallery
	creation *gate.Gate
	images   images.Source
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the gallery workflows for c. src resolves image references
// given at registration; nil means local files only.
func NewApp(cfg *config.Config, c client.Client, src images.Source, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	if src == nil {
		src = images.Router{}
	}
	return &App{
		config:   cfg,
		client:   c,
		gallery:  services.NewGallery(c, cfg.DeniedAuthor, log),
		creation: cfg.CreationGate(),
		images:   src,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run loads the gallery and blocks in the REPL until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			a.log.Warn(ctx, "closing client", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
