package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/appgallery/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string            Remote Action Endpoint URL
//	-a string            web listen address
//	-log-format string   log output format
//	-log-level string    minimum log level
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-a", "-log-format", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointURL, "u", cfg.EndpointURL, "Remote Action Endpoint URL")
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "web listen address")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	return fs.Parse(args)
}
