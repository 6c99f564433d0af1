package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

// fxLogger reports the dependency graph lifecycle through zerolog. Routine events go to trace,
// failures to error.
type fxLogger struct {
	l zerolog.Logger
}

var _ fxevent.Logger = (*fxLogger)(nil)

func Fx() fxevent.Logger {
	return &fxLogger{
		l: log.Logger.
			With().
			Str("evt.name", "fx.event").
			Logger(),
	}
}

func (f *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("constructor", e.ConstructorName).Msg("fx: provide failed")
			return
		}
		f.l.Trace().
			Str("constructor", e.ConstructorName).
			Str("module", e.ModuleName).
			Str("types", strings.Join(e.OutputTypeNames, ", ")).
			Msg("fx: provided")
	case *fxevent.Supplied:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("type", e.TypeName).Msg("fx: supply failed")
			return
		}
		f.l.Trace().Str("type", e.TypeName).Msg("fx: supplied")
	case *fxevent.Invoked:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("function", e.FunctionName).Str("trace", e.Trace).Msg("fx: invoke failed")
			return
		}
		f.l.Trace().Str("function", e.FunctionName).Msg("fx: invoked")
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("fx: start hook failed")
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("fx: stop hook failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Msg("fx: start failed")
			return
		}
		f.l.Debug().Msg("fx: started")
	case *fxevent.RolledBack:
		f.l.Error().Err(e.Err).Msg("fx: start failed, rolled back")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Msg("fx: custom logger initialization failed")
		}
	}
}
