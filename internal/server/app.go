// Package server initializes and runs the web front-end of the gallery.
// It builds the endpoint client, the submission token store and the HTTP
// handler, handles graceful shutdown and starts the HTTP server.
package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/config"
	"github.com/dmitrijs2005/appgallery/internal/client/services"
	"github.com/dmitrijs2005/appgallery/internal/logging"
	"github.com/dmitrijs2005/appgallery/internal/web"
	"github.com/dmitrijs2005/appgallery/internal/web/submit"
	"github.com/redis/go-redis/v9"
)

const tokenCleanupInterval = time.Minute

type App struct {
	config  *config.Config
	logger  logging.Logger
	client  client.Client
	tokens  submit.TokenStore
	handler *web.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	cl, err := client.NewHTTPClient(c.EndpointURL, client.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("endpoint client init error: %w", err)
	}

	tokens, err := newTokenStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("token store init error: %w", err)
	}

	secret, err := tokenSecret(ctx, c, logger)
	if err != nil {
		_ = tokens.Close()
		return nil, err
	}

	h, err := web.NewHandler(web.Options{
		Gallery:      services.NewGallery(cl, c.DeniedAuthor, logger),
		CreationGate: c.CreationGate(),
		Tokens:       tokens,
		Secret:       secret,
		UnlockTTL:    c.UnlockTTL,
		Logger:       logger,
	})
	if err != nil {
		_ = tokens.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, client: cl, tokens: tokens, handler: h}, nil
}

func newTokenStore(ctx context.Context, c *config.Config) (submit.TokenStore, error) {
	if c.TokenStore == config.TokenStoreRedis {
		return submit.NewRedisStore(ctx, &redis.Options{Addr: c.RedisAddr})
	}
	return submit.NewMemoryStore(tokenCleanupInterval), nil
}

// tokenSecret returns the configured signing secret or a random one. A random
// secret invalidates unlock cookies on restart and is not shared between
// replicas.
func tokenSecret(ctx context.Context, c *config.Config, logger logging.Logger) ([]byte, error) {
	if c.TokenSecret != "" {
		return []byte(c.TokenSecret), nil
	}
	logger.Warn(ctx, "token_secret is not set, using a random one")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating token secret: %w", err)
	}
	return b, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := web.NewRouter(app.handler, app.logger)
	s := web.NewServer(app.config.ListenAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close(ctx context.Context) {
	if err := app.tokens.Close(); err != nil {
		app.logger.Warn(ctx, "closing token store", "error", err)
	}
	if err := app.client.Close(); err != nil {
		app.logger.Warn(ctx, "closing endpoint client", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.close(ctx)
}
