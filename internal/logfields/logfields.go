package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeySlug       = "slug"
	KeySource     = "source"
	KeyPath       = "path"
	KeyTarget     = "target"
	KeyCount      = "count"
	KeyWarnings   = "warnings"
	KeyFailures   = "failures"
	KeyDurationMS = "duration_ms"
	KeyPort       = "port"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }
func Failures(n int) slog.Attr        { return slog.Int(KeyFailures, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Port(p int) slog.Attr            { return slog.Int(KeyPort, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
