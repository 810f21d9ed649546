package config

import (
	"fmt"
	"time"

	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// Validate checks the configuration for contradictions that would otherwise
// surface as confusing failures mid-build.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceDir:
		if c.Source.Path == "" {
			return derrors.ValidationError("source.path is required for a dir source")
		}
	case SourceGit:
		if c.Source.URL == "" {
			return derrors.ValidationError("source.url is required for a git source")
		}
	default:
		return derrors.ValidationError(fmt.Sprintf("unknown source.type %q (expected dir or git)", c.Source.Type))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return derrors.ValidationError(fmt.Sprintf("unknown logging.level %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return derrors.ValidationError(fmt.Sprintf("unknown logging.format %q", c.Logging.Format))
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return derrors.ValidationError(fmt.Sprintf("serve.port %d out of range", c.Serve.Port))
	}

	if c.Serve.RebuildEvery != "" {
		if _, err := time.ParseDuration(c.Serve.RebuildEvery); err != nil {
			return derrors.ValidationError(fmt.Sprintf("serve.rebuild_every %q is not a duration", c.Serve.RebuildEvery))
		}
	}

	if c.LinkCheck.NATSURL != "" && c.LinkCheck.Subject == "" {
		return derrors.ValidationError("linkcheck.subject is required when linkcheck.nats_url is set")
	}

	return nil
}
