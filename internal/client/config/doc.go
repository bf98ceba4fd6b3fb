// Package config loads runtime configuration for the gallery front-ends.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults), partly taken from
//     link-time values in internal/buildinfo.
//  2. Optional JSON or YAML file selected with -c or -config. The format is
//     chosen by extension: .yaml and .yml are YAML, everything else JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string            Remote Action Endpoint URL
//	-a string            listen address of the web front-end
//	-log-format string   text, json or zap
//	-log-level string    debug, info, warn or error
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "15m" or
// integer nanoseconds:
//
//	endpoint_url: https://script.google.com/macros/s/XXX/exec
//	creation_password_hash: $2a$10$...
//	denied_author: "쿠효정"
//	listen_addr: ":8080"
//	unlock_ttl: 15m
//	token_secret: change-me
//	token_store: redis
//	redis_addr: 127.0.0.1:6379
//	s3_region: eu-central-1
//	log_format: zap
//	log_level: debug
//
// Keys missing from the file keep their default value.
package config
