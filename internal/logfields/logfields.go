package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyClass    = "class"
	KeyGroup    = "group"
	KeyCategory = "category"
	KeyFilename = "filename"
	KeyTemplate = "template"
	KeyPath     = "path"
	KeyUnits    = "units"
	KeyReason   = "reason"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Class(name string) slog.Attr      { return slog.String(KeyClass, name) }
func Group(name string) slog.Attr      { return slog.String(KeyGroup, name) }
func Category(c string) slog.Attr      { return slog.String(KeyCategory, c) }
func Filename(name string) slog.Attr   { return slog.String(KeyFilename, name) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Units(n int) slog.Attr            { return slog.Int(KeyUnits, n) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
