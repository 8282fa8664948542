// internal/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger extends zap.Logger with correlation and timing helpers.
type Logger struct {
	*zap.Logger
	config *Config
}

// New creates a logger that writes pretty output to stdout and, when
// cfg.LogFile is set, structured JSON to a size-rotated file.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	cores := []zapcore.Core{
		zapcore.NewCore(PrettyEncoder(), zapcore.AddSync(zapcore.Lock(os.Stdout)), levelFor(cfg)),
	}
	if cfg.LogFile != "" {
		cores = append(cores, fileCore(cfg))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel)),
		config: cfg,
	}, nil
}

// NewTUI creates a logger that is safe next to a terminal UI: nothing goes
// to stdout, only to the rotated file when one is configured.
func NewTUI(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	core := zapcore.NewNopCore()
	if cfg.LogFile != "" {
		core = fileCore(cfg)
	}

	return &Logger{Logger: zap.New(core), config: cfg}, nil
}

func levelFor(cfg *Config) zapcore.Level {
	if cfg.Debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func fileCore(cfg *Config) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), levelFor(cfg))
}

// WithRun returns a logger whose entries all carry one fresh run id,
// correlating every line of a single invocation.
func (l *Logger) WithRun() *Logger {
	return &Logger{
		Logger: l.With(zap.String("run_id", uuid.New().String())),
		config: l.config,
	}
}

// WithOperation creates a logger for a single operation with a fresh correlation id.
func (l *Logger) WithOperation(operation string) *zap.Logger {
	return l.With(
		zap.String("operation", operation),
		zap.String("correlation_id", uuid.New().String()),
		zap.Time("start_time", time.Now().UTC()),
	)
}

// WithComponent tags entries with the subsystem they come from.
func (l *Logger) WithComponent(component string) *zap.Logger {
	return l.With(zap.String("component", component))
}

// LogError logs an error with additional context.
func (l *Logger) LogError(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.Error(msg, fields...)
}

// Sync flushes buffered entries, ignoring the spurious errors stdout and
// stderr report on some platforms.
func (l *Logger) Sync() error {
	err := l.Logger.Sync()
	if err != nil && (err.Error() == "sync /dev/stdout: invalid argument" ||
		err.Error() == "sync /dev/stderr: inappropriate ioctl for device") {
		return nil
	}
	return err
}

// TrackPerformance returns a func that logs how long the operation took.
func (l *Logger) TrackPerformance(operation string) (end func()) {
	start := time.Now()
	opLogger := l.WithOperation(operation)

	opLogger.Debug("Starting operation")

	return func() {
		duration := time.Since(start)
		opLogger.Debug("Operation completed",
			zap.Duration("duration", duration),
			zap.Float64("duration_ms", float64(duration.Microseconds())/1000),
		)
	}
}
