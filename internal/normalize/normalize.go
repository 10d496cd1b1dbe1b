// Package normalize rewrites field values of a reference.Library into
// canonical forms. Every pass mutates the library in place and must not run
// concurrently with another pass over the same library. Malformed values are
// never fatal: they are passed through or dropped with a logged warning.
package normalize

import "log/slog"

var pkgLogger *slog.Logger

// SetLogger sets the logger used for warnings. nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	pkgLogger = l
}

func logger() *slog.Logger {
	if pkgLogger != nil {
		return pkgLogger
	}
	return slog.Default()
}
