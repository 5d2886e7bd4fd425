package diagnostic

import (
	"github.com/rs/zerolog"
)

// Log forwards diagnostics to logger in encounter order: infos at info
// level, warnings at warn level.
func Log(logger zerolog.Logger, d Diagnostics) {
	for _, diag := range d.All() {
		e := logger.Info()
		if diag.Severity == SeverityWarning {
			e = logger.Warn()
		}

		event(e, diag).Msg(diag.Message)
	}
}

func event(e *zerolog.Event, diag Diagnostic) *zerolog.Event {
	e = e.Str("code", diag.Code)
	if diag.FieldPath != "" {
		e = e.Str("path", diag.FieldPath)
	}

	if len(diag.Suggestions) > 0 {
		e = e.Strs("suggestions", diag.Suggestions)
	}

	return e
}
