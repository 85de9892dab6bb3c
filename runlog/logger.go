// Package runlog provides the run-scoped logging facility. Per spec.md §9
// ("Global log") this is a handle threaded explicitly through the run
// context — there is no ambient package-level logger to import and call.
package runlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/fabber-go/fabber/internal/runerr"
)

// Logger is the facility every fabber package logs through. It is
// satisfied by *Zerolog below and by a no-op implementation for tests.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	// VoxelError logs a RunError with its voxel/parameter context attached
	// as structured fields, per spec §7's "log file captures every error
	// with voxel coordinates and parameter index where applicable".
	VoxelError(re *runerr.RunError)
	// With returns a child logger that always includes the given fields.
	With(fields ...Field) Logger
}

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field inline at the call site, e.g. runlog.F("delta", d).
func F(key string, value interface{}) Field { return Field{Key: key, Value: value} }

// Zerolog is the production Logger, backed by github.com/rs/zerolog.
type Zerolog struct {
	logger zerolog.Logger
}

// New builds a Zerolog logger writing to w (typically a log file per
// spec §6's logfile.txt, or os.Stdout for progress).
func New(w io.Writer) *Zerolog {
	return &Zerolog{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// NewFile opens (or truncates) path and returns a Zerolog logger writing to it.
func NewFile(path string) (*Zerolog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, runerr.New(runerr.KindDataLoad, "open log file "+path, err)
	}
	return New(f), nil
}

func apply(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	return ev
}

func (z *Zerolog) Info(msg string, fields ...Field) { apply(z.logger.Info(), fields).Msg(msg) }
func (z *Zerolog) Warn(msg string, fields ...Field) { apply(z.logger.Warn(), fields).Msg(msg) }

func (z *Zerolog) Error(msg string, err error, fields ...Field) {
	apply(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *Zerolog) VoxelError(re *runerr.RunError) {
	ev := z.logger.Error().
		Str("kind", re.Kind.String()).
		Int("voxel_index", re.Voxel.Index).
		Int("x", re.Voxel.X).Int("y", re.Voxel.Y).Int("z", re.Voxel.Z)
	if re.Param >= 0 {
		ev = ev.Int("param", re.Param)
	}
	if re.Cause != nil {
		ev = ev.AnErr("cause", re.Cause)
	}
	ev.Msg(re.Message)
}

func (z *Zerolog) With(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &Zerolog{logger: ctx.Logger()}
}

// Noop is a Logger that discards everything; used by tests and by
// packages exercised outside of a full run.
type Noop struct{}

func (Noop) Info(string, ...Field)         {}
func (Noop) Warn(string, ...Field)         {}
func (Noop) Error(string, error, ...Field) {}
func (Noop) VoxelError(*runerr.RunError)   {}
func (Noop) With(...Field) Logger          { return Noop{} }
