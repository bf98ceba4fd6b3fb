package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/appgallery/internal/buildinfo"
	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/common"
)

const (
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings shared by the CLI and web front-ends.
//
// CreationPasswordHash, when set, takes precedence over CreationPassword.
// Both empty means nobody can register new entries.
type Config struct {
	EndpointURL          string
	CreationPassword     string
	CreationPasswordHash string
	DeniedAuthor         string

	ListenAddr  string
	UnlockTTL   time.Duration
	TokenSecret string
	TokenStore  string
	RedisAddr   string

	S3 images.S3Config

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = buildinfo.EndpointURL
	c.CreationPassword = buildinfo.CreationPassword
	c.DeniedAuthor = common.DefaultDeniedAuthor
	c.ListenAddr = ":8080"
	c.UnlockTTL = 15 * time.Minute
	c.TokenStore = TokenStoreMemory
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the optional config file and flags
// found in args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.EndpointURL == "" {
		return fmt.Errorf("%w: endpoint_url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.EndpointURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint_url %q is not an http(s) URL", ErrInvalidConfig, c.EndpointURL)
	}

	switch c.TokenStore {
	case TokenStoreMemory:
	case TokenStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis token store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown token_store %q", ErrInvalidConfig, c.TokenStore)
	}

	if c.UnlockTTL <= 0 {
		return fmt.Errorf("%w: unlock_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}

// CreationGate returns the constant-mode gate guarding registration.
func (c *Config) CreationGate() *gate.Gate {
	if c.CreationPasswordHash != "" {
		return gate.NewHashed(c.CreationPasswordHash)
	}
	return gate.NewConstant(c.CreationPassword)
}

// ImageSource resolves registration image references: local paths always,
// s3://bucket/key once an S3 region or endpoint is configured.
func (c *Config) ImageSource(ctx context.Context) (images.Source, error) {
	r := images.Router{Files: images.FileSource{}}
	if c.S3.Region == "" && c.S3.Endpoint == "" {
		return r, nil
	}
	s3src, err := images.NewS3Source(ctx, c.S3)
	if err != nil {
		return nil, err
	}
	r.S3 = s3src
	return r, nil
}
