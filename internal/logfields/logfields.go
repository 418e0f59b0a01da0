package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDoc        = "doc"
	KeyRoot       = "root"
	KeyRunID      = "run_id"
	KeyFound      = "found"
	KeyFixed      = "fixed"
	KeyFailed     = "failed"
	KeyConvention = "convention"
	KeyTarget     = "target"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Doc(path string) slog.Attr        { return slog.String(KeyDoc, path) }
func Root(path string) slog.Attr       { return slog.String(KeyRoot, path) }
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Found(n int) slog.Attr            { return slog.Int(KeyFound, n) }
func Fixed(n int) slog.Attr            { return slog.Int(KeyFixed, n) }
func Failed(n int) slog.Attr           { return slog.Int(KeyFailed, n) }
func Convention(c string) slog.Attr    { return slog.String(KeyConvention, c) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
