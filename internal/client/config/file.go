package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/appgallery/internal/filex"
	"github.com/dmitrijs2005/appgallery/internal/flagx"
	"github.com/dmitrijs2005/appgallery/internal/timex"
	"gopkg.in/yaml.v3"
)

const maxConfigFileSize = 1 << 20

// fileConfig is a DTO used exclusively for file decoding. Pointer fields
// tell a missing key apart from an explicit empty value.
type fileConfig struct {
	EndpointURL          *string         `json:"endpoint_url" yaml:"endpoint_url"`
	CreationPassword     *string         `json:"creation_password" yaml:"creation_password"`
	CreationPasswordHash *string         `json:"creation_password_hash" yaml:"creation_password_hash"`
	DeniedAuthor         *string         `json:"denied_author" yaml:"denied_author"`
	ListenAddr           *string         `json:"listen_addr" yaml:"listen_addr"`
	UnlockTTL            *timex.Duration `json:"unlock_ttl" yaml:"unlock_ttl"`
	TokenSecret          *string         `json:"token_secret" yaml:"token_secret"`
	TokenStore           *string         `json:"token_store" yaml:"token_store"`
	RedisAddr            *string         `json:"redis_addr" yaml:"redis_addr"`
	S3Region             *string         `json:"s3_region" yaml:"s3_region"`
	S3Endpoint           *string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey          *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey          *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	LogFormat            *string         `json:"log_format" yaml:"log_format"`
	LogLevel             *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	name := flagx.ConfigFileFlag(args)
	if name == "" {
		return nil
	}

	path, err := filex.ExpandPath(name)
	if err != nil {
		return err
	}
	data, err := filex.ReadLimited(path, maxConfigFileSize)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrInvalidConfig, path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	set(&cfg.EndpointURL, fc.EndpointURL)
	set(&cfg.CreationPassword, fc.CreationPassword)
	set(&cfg.CreationPasswordHash, fc.CreationPasswordHash)
	set(&cfg.DeniedAuthor, fc.DeniedAuthor)
	set(&cfg.ListenAddr, fc.ListenAddr)
	set(&cfg.TokenSecret, fc.TokenSecret)
	set(&cfg.TokenStore, fc.TokenStore)
	set(&cfg.RedisAddr, fc.RedisAddr)
	set(&cfg.S3.Region, fc.S3Region)
	set(&cfg.S3.Endpoint, fc.S3Endpoint)
	set(&cfg.S3.AccessKey, fc.S3AccessKey)
	set(&cfg.S3.SecretKey, fc.S3SecretKey)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.LogLevel, fc.LogLevel)
	if fc.UnlockTTL != nil {
		cfg.UnlockTTL = fc.UnlockTTL.Duration
	}
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
