package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	log *zap.Logger
}

func NewLogger(logLevel, app string) *Logger {
	cfg := zap.Config{
		Encoding:         "json",
		DisableCaller:    true,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			TimeKey:     "timestamp",
			EncodeTime:  zapcore.ISO8601TimeEncoder,
			NameKey:     "app",
		},
	}

	var logOption zapcore.Level
	switch logLevel {
	case "debug":
		logOption = zap.DebugLevel
		cfg.EncoderConfig.CallerKey = "caller"
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	case "info":
		logOption = zap.InfoLevel
	case "warn":
		logOption = zap.WarnLevel
	case "error":
		logOption = zap.ErrorLevel
	case "panic":
		logOption = zap.PanicLevel
	case "fatal":
		logOption = zap.FatalLevel
	default:
		logOption = zap.InfoLevel
	}

	cfg.Level = zap.NewAtomicLevelAt(logOption)

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	logger.Sync()

	namedLogger := logger.Named(app)
	return &Logger{
		log: namedLogger,
	}
}

func NewNop() *Logger {
	return &Logger{
		log: zap.NewNop(),
	}
}

func NewTestLogger(w io.Writer) *Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		TimeKey:      "timestamp",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	})
	logger := zap.New(zapcore.NewCore(
		encoder,
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	))
	logger.Sync()

	return &Logger{
		log: logger,
	}
}

func Count(count int) zap.Field {
	return zap.Int("count", count)
}

func String(key, value string) zap.Field {
	return zap.String(key, value)
}

func Int(key string, value int64) zap.Field {
	return zap.Int64(key, value)
}

func Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.log.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
}

func (l *Logger) Error(msg string, err error, extraFields ...zap.Field) {
	fields := []zap.Field{zap.Error(err)}
	fields = append(fields, extraFields...)
	l.log.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, err error) {
	l.log.Fatal(msg, zap.Error(err))
}

func (l *Logger) Panic(msg string, fields ...zap.Field) {
	l.log.Panic(msg, fields...)
}
