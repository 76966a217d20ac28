package logsink

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits of File sinks.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 5
	fileMaxAgeDays = 30
)

// File writes lines as JSON records to a rotating log file. It never writes
// to the console.
type File struct {
	logger  *zap.Logger
	rotator *lumberjack.Logger
}

// NewFile opens (lazily) a rotating log file at path.
func NewFile(path string) *File {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)
	return &File{logger: zap.New(core), rotator: rotator}
}

// Append implements Sink.
func (f *File) Append(line string) {
	f.logger.Info(line)
}

// Close flushes and closes the file.
func (f *File) Close() error {
	return errors.Join(f.logger.Sync(), f.rotator.Close())
}
