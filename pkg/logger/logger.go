package logger

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger

	fileOptions FileOptions
)

// FileOptions sends a JSON copy of every log line to a rotated file
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Configure sets the log file. It must be called before the first Get to have any effect.
func Configure(f FileOptions) {
	fileOptions = f
}

// Get builds the process logger on first use and returns the same instance afterwards.
// LOG_LEVEL sets the level and JSON_LOG switches stdout to JSON.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		level := zap.NewAtomicLevelAt(levelFromEnv())

		stdoutEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig())
		if os.Getenv("JSON_LOG") != "" {
			stdoutEncoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
		}

		core := zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), level)
		if fileOptions.Path != "" {
			core = zapcore.NewTee(core, zapcore.NewCore(
				zapcore.NewJSONEncoder(jsonEncoderConfig()),
				zapcore.AddSync(rotatingFile(fileOptions)),
				level,
			))
		}

		logger = zap.New(core.With(buildFields())).Sugar()
	})

	return logger
}

func levelFromEnv() zapcore.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return zap.InfoLevel
	}

	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		log.Printf("invalid LOG_LEVEL %q, defaulting to info: %v", raw, err)
		return zap.InfoLevel
	}

	return level
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func rotatingFile(f FileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Compress:   true,
	}
}

// buildFields tags every line with the Go version and the short vcs revision when the binary carries them
func buildFields() []zapcore.Field {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	fields := []zapcore.Field{zap.String("go_version", info.GoVersion)}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			fields = append(fields, zap.String("git_revision", s.Value[:7]))
			break
		}
	}

	return fields
}

// FromCtx returns the logger stored in ctx, or the process logger, with the given key value pairs attached
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx carrying l. A ctx that already carries l is returned as is.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if current, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && current == l {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
