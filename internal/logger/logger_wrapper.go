package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/korgi/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	logger  *zap.Logger
	level   zap.AtomicLevel
	encoder zapcore.EncoderConfig
	console bool
	wrapped bool
}

// NewZapLogger creates a JSON logger writing to stderr, as zap.NewProduction does.
func NewZapLogger() contracts.Logger {
	return newZapLogger(zap.NewProductionEncoderConfig(), false)
}

// NewConsoleLogger creates a human-readable logger writing to stderr. It is
// the logger the korgi command uses.
func NewConsoleLogger() contracts.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	return newZapLogger(enc, true)
}

func newZapLogger(enc zapcore.EncoderConfig, console bool) *ZapLogger {
	z := &ZapLogger{
		level:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
		encoder: enc,
		console: console,
	}
	z.logger = zap.New(z.core(zapcore.Lock(os.Stderr)), zap.AddCaller(), zap.AddCallerSkip(2))
	return z
}

// Wrap adapts an existing zap logger, typically one from zaptest. The level
// is taken from the wrapped core.
func Wrap(l *zap.Logger) contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		if l.Core().Enabled(lvl) {
			level.SetLevel(lvl)
			break
		}
	}
	return &ZapLogger{logger: l.WithOptions(zap.AddCallerSkip(2)), level: level, wrapped: true}
}

func (z *ZapLogger) core(ws zapcore.WriteSyncer) zapcore.Core {
	var enc zapcore.Encoder
	if z.console {
		enc = zapcore.NewConsoleEncoder(z.encoder)
	} else {
		enc = zapcore.NewJSONEncoder(z.encoder)
	}
	return zapcore.NewCore(enc, ws, z.level)
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapcore.Level(level))
}

// SetDestination redirects output to the console or to a file opened for
// appending. Wrapped loggers cannot be redirected.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	if z.wrapped {
		return fmt.Errorf("log destination cannot be changed on a wrapped logger")
	}

	var ws zapcore.WriteSyncer
	switch dest {
	case contracts.ConsoleLog:
		ws = zapcore.Lock(os.Stderr)
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("file log destination requires a path")
		}
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		ws = zapcore.Lock(f)
	default:
		return fmt.Errorf("unknown log destination %q", dest)
	}

	z.logger = zap.New(z.core(ws), zap.AddCaller(), zap.AddCallerSkip(2))
	return nil
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}

	zf := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok {
			zf = append(zf, f.field)
		}
	}

	switch level {
	case zapcore.DebugLevel:
		z.logger.Debug(msg, zf...)
	case zapcore.InfoLevel:
		z.logger.Info(msg, zf...)
	case zapcore.WarnLevel:
		z.logger.Warn(msg, zf...)
	case zapcore.ErrorLevel:
		z.logger.Error(msg, zf...)
	case zapcore.FatalLevel:
		z.logger.Fatal(msg, zf...)
	}
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{zap.Bool(key, val)}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{zap.Int(key, val)}
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return &zapField{zap.Float64(key, val)}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{zap.String(key, val)}
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return &zapField{zap.Time(key, val)}
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return &zapField{zap.Int64(key, val)}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{zap.NamedError(key, val)}
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return &zapField{zap.Uint64(key, val)}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{zap.Uint8(key, val)}
}
